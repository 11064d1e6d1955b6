package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/core/cache"
	catalogService "storefront.GO/service/catalog"
	storefrontService "storefront.GO/service/storefront"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// RegisterCatalogRoutes sets up the catalog admin API (auth required via the
// /api middleware).
func RegisterCatalogRoutes(apiGroup *echo.Group, hub *storefrontService.Hub) {
	g := apiGroup.Group("/catalog")

	// POST /api/catalog/warm – fetch the catalog into the shared cache
	g.POST("/warm", func(c echo.Context) error {
		start := time.Now()
		count, err := catalogService.Warm(c.Request().Context(), hub.CatalogClient)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{"warmed": count, "request_duration_ms": duration})
	})

	// GET /api/catalog/cached – shared warm cache status
	g.GET("/cached", func(c echo.Context) error {
		products, ok := catalogService.Cached()
		return c.JSON(http.StatusOK, echo.Map{"cached": ok, "count": len(products)})
	})

	// POST /api/catalog/invalidate – drop memoized views and the warm cache
	g.POST("/invalidate", func(c echo.Context) error {
		views := len(cache.GetInstance().GetKeysByTag("view"))
		cache.GetInstance().DeleteByTag("view")
		cache.GetInstance().DeleteByTag("catalog")
		return c.JSON(http.StatusOK, echo.Map{"invalidated_views": views})
	})
}
