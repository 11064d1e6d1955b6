package registry

import (
	"context"
	"fmt"
	"sync"

	"storefront.GO/core/registry"
)

// ResolverFunc is the signature for custom extension resolvers. Args is a
// JSON-decoded map.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

var mu sync.Mutex

func getEntries() map[string]ResolverFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQL); ok && v != nil {
		return v.(map[string]ResolverFunc)
	}
	return make(map[string]ResolverFunc)
}

// Register adds a resolver. Call from init() in custom packages. Name must
// be unique. Panics if locked.
func Register(name string, resolve ResolverFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: locked (register only during init before first request)")
	}
	entries := getEntries()
	if _, ok := entries[name]; ok {
		panic("graphql/registry: duplicate resolver " + name)
	}
	entries[name] = resolve
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Unregister removes a resolver (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQL)
	entries := getEntries()
	delete(entries, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Resolve runs a registered extension resolver. Locks the registry on first
// use (immutable after).
func Resolve(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQL)
	}
	fn, ok := getEntries()[name]
	if !ok {
		return nil, fmt.Errorf("graphql/registry: unknown extension %q", name)
	}
	return fn(ctx, args)
}
