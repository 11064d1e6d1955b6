package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"storefront.GO/api"
	storefrontService "storefront.GO/service/storefront"
)

func init() {
	api.RegisterRoute(RegisterNotifyRoutes)
}

// RegisterNotifyRoutes sets up the transient-notification stream (the
// toasts). One SSE stream per session; notes not drained are dropped.
func RegisterNotifyRoutes(e *echo.Echo, hub *storefrontService.Hub) {
	// GET /notify/stream?session=ID
	e.GET("/notify/stream", func(c echo.Context) error {
		sessionID := c.QueryParam("session")
		if sessionID == "" {
			sessionID = c.Request().Header.Get("X-Session-ID")
		}
		if sessionID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session required"})
		}

		notes, cancel := hub.Notes().Subscribe(sessionID)
		defer cancel()

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set("Connection", "keep-alive")
		res.WriteHeader(http.StatusOK)
		res.Flush()

		eg, ctx := errgroup.WithContext(c.Request().Context())
		events := make(chan storefrontService.Note, 8)

		// Forward notes until the client goes away.
		eg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case n, ok := <-notes:
					if !ok {
						return nil
					}
					select {
					case events <- n:
					case <-ctx.Done():
						return nil
					}
				}
			}
		})

		// Single writer: events plus keep-alive pings.
		eg.Go(func() error {
			ticker := time.NewTicker(25 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case n := <-events:
					b, err := json.Marshal(n)
					if err != nil {
						continue
					}
					if _, err := fmt.Fprintf(res, "event: note\ndata: %s\n\n", b); err != nil {
						return nil
					}
					res.Flush()
				case <-ticker.C:
					if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
						return nil
					}
					res.Flush()
				}
			}
		})

		return eg.Wait()
	})
}
