package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"storefront.GO/core/auth"
	client "storefront.GO/model/client"
	entity "storefront.GO/model/entity"
	storefrontService "storefront.GO/service/storefront"
)

// The fake remote backend: the product-list and cart endpoints the real
// deployment treats as opaque contracts, backed here by sqlite.

type backendProduct struct {
	ID     string `gorm:"primaryKey;column:id" json:"id"`
	Name   string `gorm:"column:name" json:"name"`
	Price  string `gorm:"column:price" json:"price"`
	JustIn bool   `gorm:"column:just_in" json:"justIn"`
	Image  string `gorm:"column:img" json:"img"`
}

type backendCart struct {
	UID   string         `gorm:"primaryKey;column:uid"`
	Items datatypes.JSON `gorm:"column:items"`
}

func backendDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("storefront_backend_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&backendProduct{}, &backendCart{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func backendServer(t *testing.T, db *gorm.DB) *httptest.Server {
	t.Helper()
	e := echo.New()

	e.GET("/products", func(c echo.Context) error {
		var products []backendProduct
		if err := db.Order("id").Find(&products).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	e.GET("/cart", func(c echo.Context) error {
		uid := c.QueryParam("uid")
		var cart backendCart
		if err := db.First(&cart, "uid = ?", uid).Error; err != nil {
			// No cart yet: a shape without an items array, not an error
			return c.JSON(http.StatusOK, echo.Map{"uid": uid})
		}
		return c.JSON(http.StatusOK, echo.Map{"uid": uid, "items": json.RawMessage(cart.Items)})
	})

	e.POST("/cart", func(c echo.Context) error {
		var payload struct {
			UID   string          `json:"uid"`
			Items json.RawMessage `json:"items"`
		}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		cart := backendCart{UID: payload.UID, Items: datatypes.JSON(payload.Items)}
		if err := db.Save(&cart).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"saved": true})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func seedProducts(t *testing.T, db *gorm.DB, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		p := backendProduct{
			ID:     fmt.Sprintf("p%02d", i),
			Name:   fmt.Sprintf("Handloom Item %02d", i),
			Price:  fmt.Sprintf("Rs %d", 250*(i+1)),
			JustIn: i%2 == 0,
			Image:  fmt.Sprintf("https://cdn.example.com/p%02d.jpg", i),
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestIntegration_FullStorefrontFlow(t *testing.T) {
	db := backendDB(t)
	seedProducts(t, db, 12)
	srv := backendServer(t, db)

	broker := auth.NewBroker()
	hub := storefrontService.NewHub(broker,
		client.NewCatalogClient(srv.URL+"/products"),
		client.NewCartClient(srv.URL+"/cart"), 8, 8)
	defer hub.Close()

	s := hub.Session("shopper-1")
	waitUntil(t, "catalog load", func() bool { return !s.Catalog().Loading() })

	snap := s.Snapshot()
	if snap.Total != 12 || snap.Window != 8 {
		t.Fatalf("snapshot total/window = %d/%d, want 12/8", snap.Total, snap.Window)
	}

	// Reveal the rest via sentinel visibility.
	viewport := storefrontService.Rect{Top: 0, Left: 0, Bottom: 800, Right: 600}
	sentinel := storefrontService.Rect{Top: 700, Left: 0, Bottom: 750, Right: 600}
	if !s.ReportSentinel(sentinel, viewport) {
		t.Fatal("reveal should advance")
	}
	snap = s.Snapshot()
	if snap.Window != 12 || !snap.Exhausted {
		t.Errorf("window = %d exhausted = %v, want 12/true", snap.Window, snap.Exhausted)
	}

	// Unauthenticated add: no local change, no backend write.
	p, ok := s.FindProduct("p03")
	if !ok {
		t.Fatal("p03 missing from catalog")
	}
	if err := s.Cart().Add(context.Background(), p); err != storefrontService.ErrSignInRequired {
		t.Fatalf("err = %v, want ErrSignInRequired", err)
	}
	var count int64
	db.Model(&backendCart{}).Count(&count)
	if count != 0 {
		t.Errorf("backend carts = %d, want 0", count)
	}

	// Sign in; the cart fetch is gated on the identity emission.
	broker.Publish(&entity.Identity{UID: "u1", Name: "Asha", Email: "asha@example.com"})
	waitUntil(t, "cart activation", func() bool { return s.Cart().Active() && !s.Cart().Loading() })

	// Add the same product twice: one line, qty 2, persisted verbatim.
	if err := s.Cart().Add(context.Background(), p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Cart().Add(context.Background(), p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Cart().TotalQty(); got != 2 {
		t.Errorf("TotalQty = %d immediately after adds, want 2", got)
	}

	waitUntil(t, "persisted snapshot", func() bool {
		var cart backendCart
		if err := db.First(&cart, "uid = ?", "u1").Error; err != nil {
			return false
		}
		var items []entity.CartItem
		if err := json.Unmarshal(cart.Items, &items); err != nil {
			return false
		}
		return len(items) == 1 && items[0].Qty == 2
	})

	var cart backendCart
	if err := db.First(&cart, "uid = ?", "u1").Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	var items []entity.CartItem
	if err := json.Unmarshal(cart.Items, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if items[0].ProductID != "p03" || items[0].Price != 1000 || items[0].Name != "Handloom Item 03" {
		t.Errorf("persisted item = %+v", items[0])
	}

	// Sign out: local mirror cleared, remote cart untouched.
	broker.Publish(nil)
	waitUntil(t, "sign-out", func() bool { return s.Cart().TotalQty() == 0 })
	db.Model(&backendCart{}).Count(&count)
	if count != 1 {
		t.Errorf("backend carts after sign-out = %d, want 1 (not deleted remotely)", count)
	}
}

func TestIntegration_ExistingCartReloadedOnSignIn(t *testing.T) {
	db := backendDB(t)
	seedProducts(t, db, 4)
	srv := backendServer(t, db)

	seeded, _ := json.Marshal([]entity.CartItem{{ProductID: "p01", Name: "Handloom Item 01", Price: 500, Qty: 3}})
	if err := db.Create(&backendCart{UID: "u2", Items: datatypes.JSON(seeded)}).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	broker := auth.NewBroker()
	hub := storefrontService.NewHub(broker,
		client.NewCatalogClient(srv.URL+"/products"),
		client.NewCartClient(srv.URL+"/cart"), 8, 8)
	defer hub.Close()

	s := hub.Session("shopper-2")
	waitUntil(t, "catalog load", func() bool { return !s.Catalog().Loading() })

	broker.Publish(&entity.Identity{UID: "u2"})
	waitUntil(t, "cart reload", func() bool { return s.Cart().TotalQty() == 3 })

	items := s.Cart().Items()
	if len(items) != 1 || items[0].ProductID != "p01" {
		t.Errorf("items = %+v", items)
	}
}
