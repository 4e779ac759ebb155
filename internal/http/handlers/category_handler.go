package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/catalog"
)

type CategoryHandler struct {
	Catalog *catalog.Client
}

// List serves the category names. On upstream failure the client already
// substituted the fixed fallback set, so this never errors.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats := h.Catalog.Categories(c.Context())
	return c.JSON(fiber.Map{"categories": cats})
}

// Products serves the catalog restricted server-side to one category.
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	name := c.Params("name")
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	products := h.Catalog.ProductsByCategory(c.Context(), name)
	return c.JSON(fiber.Map{"category": name, "products": products})
}
