package storefront

import (
	"context"
	"errors"
	"log"
	"sync"

	client "storefront.GO/model/client"
	entity "storefront.GO/model/entity"
)

// ErrSignInRequired is returned by Add when no identity is present. The
// caller redirects to the sign-in entry point; local state is untouched and
// no network call is made.
var ErrSignInRequired = errors.New("sign-in required")

// Notifier surfaces transient user-facing notifications (the toasts).
type Notifier interface {
	Success(text string)
	Failure(text string)
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// CartStore mirrors the shopper's remote cart. It activates only when an
// identity is present; adds are applied optimistically and persisted as a
// full snapshot, fire-and-forget-with-notification.
type CartStore struct {
	client *client.CartClient
	notify Notifier

	mu       sync.RWMutex
	identity *entity.Identity
	items    []entity.CartItem
	loading  bool
}

func NewCartStore(c *client.CartClient, n Notifier) *CartStore {
	if n == nil {
		n = NopNotifier{}
	}
	return &CartStore{client: c, notify: n}
}

// Activate fetches the remote cart for the identity. Called on every
// identity change; nil clears local state (the remote cart is not deleted).
// A load failure is logged and degrades to an empty cart.
func (s *CartStore) Activate(ctx context.Context, id *entity.Identity) {
	s.mu.Lock()
	s.identity = id
	s.items = nil
	if id == nil {
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	items, err := s.client.Fetch(ctx, id.UID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil || s.identity.UID != id.UID {
		// Identity changed while the fetch was in flight; drop the result.
		return
	}
	s.loading = false
	if err != nil {
		log.Printf("cart: load failed for %s: %v", id.UID, err)
		return
	}
	s.items = items
}

// Add merges the product into the cart (existing item: qty+1, new item:
// qty 1), applies the result locally before the persist is dispatched, and
// persists the full snapshot in the background. The persist outcome arrives
// through the notifier; a failure does NOT roll back the local state.
func (s *CartStore) Add(ctx context.Context, p entity.Product) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrSignInRequired
	}
	uid := s.identity.UID
	updated := entity.MergeItem(s.items, p)
	s.items = updated
	s.mu.Unlock()

	snapshot := make([]entity.CartItem, len(updated))
	copy(snapshot, updated)

	go func() {
		// The request context ends with the caller; the persist keeps going.
		if err := s.client.Persist(context.Background(), uid, snapshot); err != nil {
			log.Printf("cart: persist failed for %s: %v", uid, err)
			s.notify.Failure("Could not save your cart. Please try again.")
			return
		}
		s.notify.Success("Added to cart")
	}()
	return nil
}

// Items returns a copy of the current cart items.
func (s *CartStore) Items() []entity.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalQty is the cart badge number.
func (s *CartStore) TotalQty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.TotalQty(s.items)
}

// Loading reports whether a cart fetch is in flight.
func (s *CartStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Active reports whether the store holds an identity (adds will persist).
func (s *CartStore) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}
