package storefront

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	entity "storefront.GO/model/entity"
	storefrontService "storefront.GO/service/storefront"
)

const sessionCookie = "sf_session"

func init() {
	api.RegisterRoute(RegisterStorefrontRoutes)
}

// sessionID resolves the shopper's session: X-Session-ID header first, then
// cookie, else a fresh ID is minted and set on both.
func sessionID(c echo.Context) string {
	if id := c.Request().Header.Get("X-Session-ID"); id != "" {
		return id
	}
	if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
	c.Response().Header().Set("X-Session-ID", id)
	return id
}

// RegisterStorefrontRoutes sets up the public storefront page API.
func RegisterStorefrontRoutes(e *echo.Echo, hub *storefrontService.Hub) {
	g := e.Group("/storefront")

	// GET /storefront/view – current derived window plus page flags
	g.GET("/view", func(c echo.Context) error {
		start := time.Now()
		s := hub.Session(sessionID(c))
		snap := s.Snapshot()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, snap)
	})

	// POST /storefront/search – set the search term (resets the window)
	g.POST("/search", func(c echo.Context) error {
		var body struct {
			Q string `json:"q"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := hub.Session(sessionID(c))
		s.SetSearch(body.Q)
		return c.JSON(http.StatusOK, s.Snapshot())
	})

	// POST /storefront/sort – set the sort mode
	g.POST("/sort", func(c echo.Context) error {
		var body struct {
			Mode string `json:"mode"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := hub.Session(sessionID(c))
		s.SetSort(entity.ParseSortMode(body.Mode))
		return c.JSON(http.StatusOK, s.Snapshot())
	})

	// POST /storefront/filter – set the recent filter
	g.POST("/filter", func(c echo.Context) error {
		var body struct {
			Recent string `json:"recent"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := hub.Session(sessionID(c))
		s.SetRecent(entity.ParseRecentFilter(body.Recent))
		return c.JSON(http.StatusOK, s.Snapshot())
	})

	// POST /storefront/reveal – sentinel visibility report from the page
	g.POST("/reveal", func(c echo.Context) error {
		var body struct {
			Sentinel storefrontService.Rect `json:"sentinel"`
			Viewport storefrontService.Rect `json:"viewport"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := hub.Session(sessionID(c))
		advanced := s.ReportSentinel(body.Sentinel, body.Viewport)
		snap := s.Snapshot()
		return c.JSON(http.StatusOK, echo.Map{
			"advanced":  advanced,
			"window":    snap.Window,
			"total":     snap.Total,
			"exhausted": snap.Exhausted,
		})
	})

	// POST /storefront/cart/add – optimistic add; signed-out shoppers are
	// redirected to the sign-in entry point with no state change
	g.POST("/cart/add", func(c echo.Context) error {
		var body struct {
			ProductID string `json:"productId"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := hub.Session(sessionID(c))
		p, ok := s.FindProduct(body.ProductID)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown product"})
		}
		if err := s.Cart().Add(c.Request().Context(), p); err != nil {
			if err == storefrontService.ErrSignInRequired {
				return c.Redirect(http.StatusSeeOther, config.AppConfig.SignInURL)
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, echo.Map{"cartQty": s.Cart().TotalQty()})
	})

	// GET /storefront/cart – current local cart mirror
	g.GET("/cart", func(c echo.Context) error {
		s := hub.Session(sessionID(c))
		return c.JSON(http.StatusOK, echo.Map{
			"items":   s.Cart().Items(),
			"cartQty": s.Cart().TotalQty(),
			"loading": s.Cart().Loading(),
		})
	})

	// GET /storefront/inquiry/:id – open the WhatsApp deep link
	g.GET("/inquiry/:id", func(c echo.Context) error {
		s := hub.Session(sessionID(c))
		p, ok := s.FindProduct(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown product"})
		}
		return storefrontService.Inquire(p, config.AppConfig.WhatsAppPhone, redirectOpener{c})
	})

	// POST /storefront/session/close – view teardown
	g.POST("/session/close", func(c echo.Context) error {
		hub.CloseSession(sessionID(c))
		return c.NoContent(http.StatusNoContent)
	})
}

// redirectOpener opens deep links as HTTP redirects; the page targets a new
// browsing context.
type redirectOpener struct {
	c echo.Context
}

func (r redirectOpener) Open(url string) error {
	return r.c.Redirect(http.StatusFound, url)
}
