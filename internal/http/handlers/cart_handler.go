package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/validate"
)

type CartHandler struct {
	Catalog *catalog.Client
	Carts   *cart.Manager
}

func (h *CartHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

type cartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

func view(s *cart.Store) cartView {
	return cartView{Items: s.Items(), TotalItems: s.TotalItems(), TotalPrice: s.TotalPrice()}
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	s := h.Carts.Get(h.ensureSID(c))
	return c.JSON(view(s))
}

type addItemRequest struct {
	ProductID string `json:"productId" form:"productId"`
	Quantity  string `json:"quantity" form:"quantity"`
}

// Add puts a product in the session's cart, looking it up upstream first so
// the cart stores full product data, not just an id.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	id, ok := validate.ProductID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	qty := 1
	if req.Quantity != "" {
		n, ok := validate.Quantity(req.Quantity)
		if !ok || n < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid quantity"})
		}
		qty = n
	}

	p, ok := h.Catalog.Product(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	s := h.Carts.Get(h.ensureSID(c))
	for i := 0; i < qty; i++ {
		s.Add(p)
	}
	log.Info(c, "cart.add", map[string]any{"product": id, "qty": qty})
	return c.Status(fiber.StatusCreated).JSON(view(s))
}

type updateItemRequest struct {
	Quantity string `json:"quantity" form:"quantity"`
}

// Update sets an entry's quantity; zero or less removes it. Updating an id
// that is not in the cart changes nothing, mirroring the store contract.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	qty, ok := validate.Quantity(req.Quantity)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid quantity"})
	}

	s := h.Carts.Get(h.ensureSID(c))
	s.UpdateQuantity(id, qty)
	log.Info(c, "cart.update", map[string]any{"product": id, "qty": qty})
	return c.JSON(view(s))
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	s := h.Carts.Get(h.ensureSID(c))
	s.Remove(id)
	log.Info(c, "cart.remove", map[string]any{"product": id})
	return c.JSON(view(s))
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	s := h.Carts.Get(h.ensureSID(c))
	s.Clear()
	log.Info(c, "cart.clear", nil)
	return c.JSON(view(s))
}
