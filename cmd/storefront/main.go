package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/kv"
	applog "storefront/internal/log"
	"storefront/internal/prefs"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	mirror, err := kv.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	client := catalog.New(cfg.CatalogBaseURL, &http.Client{}, catalog.DefaultPolicy(), cfg.CatalogRPS)
	carts := cart.NewManager(mirror)
	defer carts.Close()
	themes := prefs.New(mirror)
	defer themes.Close()

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return handlers.NotFound(c, "Something went wrong. Please try again.")
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return handlers.NotFound(c, "Page not found")
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
