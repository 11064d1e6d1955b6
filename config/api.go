package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only surfaces under /api that need no credentials. Shopper routes
	// (/storefront/*, /notify/stream, /graphql) live outside the /api group.
	return []string{"/api/catalog/cached"}
}
