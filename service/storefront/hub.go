package storefront

import (
	"sync"

	"storefront.GO/config"
	"storefront.GO/core/auth"
	client "storefront.GO/model/client"
)

// Hub owns the live sessions and the collaborators they share: the identity
// stream, the remote-store clients and the notification center.
type Hub struct {
	Stream        auth.IdentityStream
	CatalogClient *client.CatalogClient
	CartClient    *client.CartClient

	notes      *NoteCenter
	windowInit int
	revealStep int

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(stream auth.IdentityStream, catalogClient *client.CatalogClient, cartClient *client.CartClient, windowInit, revealStep int) *Hub {
	return &Hub{
		Stream:        stream,
		CatalogClient: catalogClient,
		CartClient:    cartClient,
		notes:         NewNoteCenter(),
		windowInit:    windowInit,
		revealStep:    revealStep,
		sessions:      make(map[string]*Session),
	}
}

// HubFromConfig builds the hub from AppConfig. With Redis configured the
// identity stream is the pub/sub channel; otherwise an in-process broker
// (single-node and dev runs).
func HubFromConfig() *Hub {
	cfg := config.AppConfig
	var stream auth.IdentityStream
	if config.RedisClient != nil {
		stream = auth.NewRedisStream(config.RedisClient, config.IdentityChannel())
	} else {
		stream = auth.NewBroker()
	}
	return NewHub(stream,
		client.NewCatalogClient(cfg.CatalogURL),
		client.NewCartClient(cfg.CartURL),
		cfg.WindowInit, cfg.RevealStep)
}

// Session returns the session for an ID, creating it lazily.
func (h *Hub) Session(id string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		return s
	}
	s := NewSession(id, h.Stream, h.CatalogClient, h.CartClient, h.notes.For(id), h.windowInit, h.revealStep)
	h.sessions[id] = s
	return s
}

// Notes returns the notification center.
func (h *Hub) Notes() *NoteCenter { return h.notes }

// CloseSession tears one session down and forgets it.
func (h *Hub) CloseSession(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Close tears all sessions down.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
