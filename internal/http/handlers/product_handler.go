package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/catalog"
	"storefront/internal/log"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *catalog.Client
}

// Detail serves a single product. The upstream cannot tell "gone" from
// "unreachable", so both land on the same not-found response.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, ok := h.Catalog.Product(c.Context(), id)
	if !ok {
		log.Info(c, "product.absent", map[string]any{"id": id})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
