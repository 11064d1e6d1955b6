package storefront

import (
	"sync"
	"time"
)

// Note is one transient notification.
type Note struct {
	Level string    `json:"level"` // "success" or "failure"
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// NoteCenter fans notes out to per-session subscribers (the SSE handlers).
// Slow subscribers drop notes; they are transient by contract.
type NoteCenter struct {
	mu   sync.Mutex
	subs map[string][]chan Note
}

func NewNoteCenter() *NoteCenter {
	return &NoteCenter{subs: make(map[string][]chan Note)}
}

// For returns a Notifier bound to a session.
func (c *NoteCenter) For(sessionID string) Notifier {
	return sessionNotifier{center: c, sessionID: sessionID}
}

// Subscribe registers a listener for a session's notes. The returned func
// cancels the subscription.
func (c *NoteCenter) Subscribe(sessionID string) (<-chan Note, func()) {
	ch := make(chan Note, 8)
	c.mu.Lock()
	c.subs[sessionID] = append(c.subs[sessionID], ch)
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			list := c.subs[sessionID]
			for i, s := range list {
				if s == ch {
					c.subs[sessionID] = append(list[:i], list[i+1:]...)
					break
				}
			}
			if len(c.subs[sessionID]) == 0 {
				delete(c.subs, sessionID)
			}
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *NoteCenter) publish(sessionID, level, text string) {
	note := Note{Level: level, Text: text, At: time.Now()}
	// Sends never block (buffered, drop on full), so they stay under the
	// lock; cancel closes a channel only after removing it here.
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs[sessionID] {
		select {
		case ch <- note:
		default:
			// Subscriber is not draining; drop.
		}
	}
}

type sessionNotifier struct {
	center    *NoteCenter
	sessionID string
}

func (n sessionNotifier) Success(text string) { n.center.publish(n.sessionID, "success", text) }
func (n sessionNotifier) Failure(text string) { n.center.publish(n.sessionID, "failure", text) }
