package auth

import (
	"sync"

	entity "storefront.GO/model/entity"
)

// IdentityStream is a push-based source of identity changes from the
// external auth provider. Implementations: Broker (in-process) and
// RedisStream (pub/sub channel).
type IdentityStream interface {
	// Subscribe registers fn for every identity change (nil = signed out).
	// The returned func cancels the subscription.
	Subscribe(fn func(*entity.Identity)) (unsubscribe func())
}

// Session tracks the current signed-in identity for one storefront view.
// It subscribes to the stream for its lifetime; Close unsubscribes.
type Session struct {
	mu       sync.RWMutex
	identity *entity.Identity
	loading  bool
	unsub    func()
	onChange func(*entity.Identity)
}

// NewSession subscribes to the stream. The loading flag stays set until the
// first emission, matching the provider's initial-resolution window.
// onChange (optional) fires after each emission is applied.
func NewSession(stream IdentityStream, onChange func(*entity.Identity)) *Session {
	s := &Session{loading: true, onChange: onChange}
	s.unsub = stream.Subscribe(s.apply)
	return s
}

func (s *Session) apply(id *entity.Identity) {
	s.mu.Lock()
	s.identity = id
	s.loading = false
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(id)
	}
}

// Identity returns the current identity, or nil when signed out.
func (s *Session) Identity() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Loading reports whether the initial identity resolution is still pending.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Close cancels the stream subscription. Safe to call more than once.
func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}
