package storefront

import (
	"context"
	"sync"

	"storefront.GO/core/auth"
	client "storefront.GO/model/client"
	entity "storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

// Session is the per-shopper view-model: view state, auth session, catalog
// loader, cart store and reveal controller, all owned explicitly — no
// ambient globals. One session per storefront view.
type Session struct {
	ID string

	auth     *auth.Session
	loader   *catalog.Loader
	cart     *CartStore
	reveal   *Reveal
	observer *SentinelObserver

	mu          sync.Mutex
	search      string
	sortMode    entity.SortMode
	recent      entity.RecentFilter
	lastVersion uint64
}

// NewSession wires the view-model and starts its loads: the catalog fetch
// begins immediately, the cart fetch strictly after an identity emission.
func NewSession(id string, stream auth.IdentityStream, catalogClient *client.CatalogClient, cartClient *client.CartClient, notify Notifier, windowInit, revealStep int) *Session {
	s := &Session{
		ID:       id,
		sortMode: entity.SortNameAsc,
		recent:   entity.RecentAll,
		reveal:   NewReveal(windowInit, revealStep),
		observer: NewSentinelObserver(),
		loader:   catalog.NewLoader(catalogClient),
	}
	s.cart = NewCartStore(cartClient, notify)
	s.auth = auth.NewSession(stream, func(identity *entity.Identity) {
		go s.cart.Activate(context.Background(), identity)
	})
	s.loader.Start(context.Background())
	return s
}

// SetSearch updates the search term; any input change resets the window.
func (s *Session) SetSearch(q string) {
	s.mu.Lock()
	changed := s.search != q
	s.search = q
	s.mu.Unlock()
	if changed {
		s.resetWindow()
	}
}

// SetSort updates the sort mode; any input change resets the window.
func (s *Session) SetSort(m entity.SortMode) {
	s.mu.Lock()
	changed := s.sortMode != m
	s.sortMode = m
	s.mu.Unlock()
	if changed {
		s.resetWindow()
	}
}

// SetRecent updates the recent filter; any input change resets the window.
func (s *Session) SetRecent(f entity.RecentFilter) {
	s.mu.Lock()
	changed := s.recent != f
	s.recent = f
	s.mu.Unlock()
	if changed {
		s.resetWindow()
	}
}

func (s *Session) resetWindow() {
	s.reveal.Reset()
	s.observer.Rearm()
}

// derived runs the pipeline for the current inputs. A new catalog snapshot
// counts as an input change and resets the window.
func (s *Session) derived() []entity.Product {
	products := s.loader.Products()
	version := s.loader.Version()

	s.mu.Lock()
	if version != s.lastVersion {
		s.lastVersion = version
		s.mu.Unlock()
		s.resetWindow()
		s.mu.Lock()
	}
	search, recent, mode := s.search, s.recent, s.sortMode
	s.mu.Unlock()

	return Derive(products, version, search, recent, mode)
}

// ViewSnapshot is what the presentation layer renders.
type ViewSnapshot struct {
	Products       []entity.Product    `json:"products"`
	Total          int                 `json:"total"`
	Window         int                 `json:"window"`
	Exhausted      bool                `json:"exhausted"`
	CatalogLoading bool                `json:"catalogLoading"`
	AuthLoading    bool                `json:"authLoading"`
	CartLoading    bool                `json:"cartLoading"`
	CartActive     bool                `json:"cartActive"`
	SignedIn       bool                `json:"signedIn"`
	CartQty        int                 `json:"cartQty"`
	Search         string              `json:"search"`
	Sort           entity.SortMode     `json:"sort"`
	Recent         entity.RecentFilter `json:"recent"`
}

// Snapshot derives the current visible window plus the flags the page shows.
func (s *Session) Snapshot() ViewSnapshot {
	out := s.derived()
	win := s.reveal.Window(len(out))

	s.mu.Lock()
	search, recent, mode := s.search, s.recent, s.sortMode
	s.mu.Unlock()

	return ViewSnapshot{
		Products:       out[:win],
		Total:          len(out),
		Window:         win,
		Exhausted:      s.reveal.State(len(out)) == Exhausted,
		CatalogLoading: s.loader.Loading(),
		AuthLoading:    s.auth.Loading(),
		CartLoading:    s.cart.Loading(),
		CartActive:     s.cart.Active(),
		SignedIn:       s.auth.Identity() != nil,
		CartQty:        s.cart.TotalQty(),
		Search:         search,
		Sort:           mode,
		Recent:         recent,
	}
}

// ReportSentinel feeds one visibility observation from the presentation
// layer. On the sentinel becoming fully visible while not exhausted, the
// window grows by one step and the observation is re-established. Returns
// whether the window grew.
func (s *Session) ReportSentinel(sentinel, viewport Rect) bool {
	out := s.derived()
	if !s.observer.Report(sentinel, viewport) {
		return false
	}
	if !s.reveal.Advance(len(out)) {
		return false
	}
	// Window changed: the old observation is torn down, a fresh one begins.
	s.observer.Rearm()
	return true
}

// Cart returns the session's cart store.
func (s *Session) Cart() *CartStore { return s.cart }

// Auth returns the session's auth state.
func (s *Session) Auth() *auth.Session { return s.auth }

// Catalog returns the session's catalog loader.
func (s *Session) Catalog() *catalog.Loader { return s.loader }

// FindProduct looks a product up in the loaded catalog by id.
func (s *Session) FindProduct(id string) (entity.Product, bool) {
	for _, p := range s.loader.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// Close tears the session down (identity subscription included).
func (s *Session) Close() {
	s.auth.Close()
}
