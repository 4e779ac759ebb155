package handlers

import (
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/prefs"
)

type Deps struct {
	ListingHandler  *ListingHandler
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	CartHandler     *CartHandler
	ThemeHandler    *ThemeHandler
}

func NewDeps(client *catalog.Client, carts *cart.Manager, themes *prefs.Store) *Deps {
	return &Deps{
		ListingHandler:  &ListingHandler{Catalog: client},
		ProductHandler:  &ProductHandler{Catalog: client},
		CategoryHandler: &CategoryHandler{Catalog: client},
		CartHandler:     &CartHandler{Catalog: client, Carts: carts},
		ThemeHandler:    &ThemeHandler{Themes: themes},
	}
}
