package registry

import (
	"sync"
)

// Registry is a thread-safe key-value store with per-key locking.
// Extension registries (cmd, cron, api, graphql) store their entries here
// during init() and lock the key once the entries have been applied.
type Registry struct {
	m      sync.Map
	locked sync.Map // key -> struct{}
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// SetGlobal stores a value for a key.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.m.Store(key, value)
}

// GetGlobal retrieves a value for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.m.Load(key)
}

// Lock marks a key immutable. Registration after Lock panics in the callers.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, struct{}{})
}

// IsLocked reports whether a key has been locked.
func (r *Registry) IsLocked(key string) bool {
	_, ok := r.locked.Load(key)
	return ok
}

// UnlockForTesting removes the lock on a key (for tests only).
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
