package auth

import (
	"sync"

	entity "storefront.GO/model/entity"
)

// Broker is an in-process IdentityStream. Publish fans an identity change
// out to all subscribers. After the first publish, new subscribers get the
// current state replayed immediately, like a real auth-state listener.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]func(*entity.Identity)
	next    int
	last    *entity.Identity
	emitted bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(*entity.Identity))}
}

// Subscribe implements IdentityStream.
func (b *Broker) Subscribe(fn func(*entity.Identity)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	replay := b.emitted
	last := b.last
	b.mu.Unlock()

	if replay {
		fn(last)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish pushes an identity change (nil = signed out) to all subscribers.
func (b *Broker) Publish(id *entity.Identity) {
	b.mu.Lock()
	b.last = id
	b.emitted = true
	fns := make([]func(*entity.Identity), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
