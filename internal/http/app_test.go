package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/kv"
	"storefront/internal/prefs"
	"storefront/internal/retry"
)

// fakeCatalog serves the remote API surface the client consumes.
func fakeCatalog(t *testing.T, products []domain.Product, categories []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(categories)
	})
	mux.HandleFunc("/products/category/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/products/category/")
		out := []domain.Product{}
		for _, p := range products {
			if p.Category == name {
				out = append(out, p)
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/products/"))
		if err == nil {
			for _, p := range products {
				if p.ID == id {
					_ = json.NewEncoder(w).Encode(p)
					return
				}
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(products)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newApp wires a Fiber app against the given catalog base URL with fresh
// in-memory state, mirroring the wiring in cmd/storefront.
func newApp(t *testing.T, catalogURL string) *fiber.App {
	t.Helper()

	mirror, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = mirror.Close() })

	policy := retry.Policy{MaxAttempts: 3, Backoff: retry.Linear(time.Millisecond)}
	client := catalog.New(catalogURL, &http.Client{}, policy, 0)
	carts := cart.NewManager(mirror)
	t.Cleanup(carts.Close)
	themes := prefs.New(mirror)
	t.Cleanup(themes.Close)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(client, carts, themes)
	api := app.Group("/api/v1")
	api.Get("/products", deps.ListingHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/:name/products", deps.CategoryHandler.Products)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart/items", deps.CartHandler.Add)
	app.Put("/cart/items/:id", deps.CartHandler.Update)
	app.Delete("/cart/items/:id", deps.CartHandler.Remove)
	app.Delete("/cart", deps.CartHandler.Clear)
	app.Get("/theme", deps.ThemeHandler.Get)
	app.Put("/theme", deps.ThemeHandler.Set)
	app.Use(func(c *fiber.Ctx) error { return handlers.NotFound(c, "Page not found") })

	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	return v
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Cheap Product", Price: 50, Category: "electronics"},
		{ID: 2, Title: "Expensive Product", Price: 150, Category: "jewelery"},
		{ID: 3, Title: "Mid Product", Price: 100, Category: "electronics"},
	}
}
