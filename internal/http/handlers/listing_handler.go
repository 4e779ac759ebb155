package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/catalog"
	"storefront/internal/listing"
	"storefront/internal/log"
	"storefront/internal/validate"
)

type ListingHandler struct {
	Catalog *catalog.Client
}

// List fetches the full catalog and runs it through the listing pipeline with
// the request's query spec. A dead upstream shows up as an empty page, never
// as an error response.
func (h *ListingHandler) List(c *fiber.Ctx) error {
	q := listing.Query{
		Search:   validate.Q(c.Query("search")),
		Category: validate.Category(c.Query("category")),
		MinPrice: validate.Price(c.Query("minPrice")),
		MaxPrice: validate.Price(c.Query("maxPrice")),
		Sort:     listing.SortKey(validate.Sort(c.Query("sort"))),
		Page:     validate.Page(c.Query("page")),
		PageSize: listing.DefaultPageSize,
	}

	products := h.Catalog.AllProducts(c.Context())
	page := listing.Run(products, q)

	log.Info(c, "listing.page", map[string]any{
		"search": q.Search, "category": q.Category, "page": page.Page, "total": page.TotalItems,
	})
	return c.JSON(page)
}
