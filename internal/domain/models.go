package domain

// Product is one catalog entry as the remote API serves it. Products are
// never mutated locally; a fresh fetch replaces the whole set.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// CartItem pairs a product with the quantity held in a visitor's cart.
// Quantity is always >= 1; an item dropped to zero is removed, not stored.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)
