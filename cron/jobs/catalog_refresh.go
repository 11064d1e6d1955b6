package jobs

import (
	"context"
	"log"

	"storefront.GO/config"
	"storefront.GO/cron"
	client "storefront.GO/model/client"
	catalogService "storefront.GO/service/catalog"
)

func init() {
	schedule := config.GetEnv("CATALOG_REFRESH_SCHEDULE", "@every 15m")
	cron.Register("catalogrefresh", schedule, CatalogRefreshJob)
}

// CatalogRefreshJob re-fetches the product list into the shared warm cache.
// Per-view loaders still fetch once on their own; this only keeps the
// shared read surfaces (GraphQL, admin API) fresh.
func CatalogRefreshJob(args ...string) {
	config.LoadAppConfig()
	c := client.NewCatalogClient(config.AppConfig.CatalogURL)
	count, err := catalogService.Warm(context.Background(), c)
	if err != nil {
		log.Printf("cron: catalog refresh failed: %v", err)
		return
	}
	log.Printf("cron: catalog refreshed, %d products", count)
}
