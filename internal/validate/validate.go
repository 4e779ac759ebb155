package validate

import (
	"strconv"
	"strings"
)

// Listing inputs are sanitized, not rejected: anything malformed collapses to
// the documented default so a hand-edited URL never produces an error page.

// Q trims a search term and clamps it to a sane length.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Category trims a category filter. Category names may carry spaces and
// apostrophes ("men's clothing"), so no charset is enforced.
func Category(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}

// Price parses an optional decimal bound. Missing, non-numeric or negative
// values mean "unbounded" and come back as nil.
func Price(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}

// Page parses a 1-based page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Sort keeps only the recognized sort keys; anything else means unsorted.
func Sort(s string) string {
	switch s {
	case "price-asc", "price-desc":
		return s
	}
	return ""
}

// ProductID parses a positive integer product identifier.
func ProductID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Quantity parses a cart quantity. Zero and negatives are valid input (they
// mean "remove"); only non-numeric input is rejected.
func Quantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n > 50 {
		n = 50 // clamp to avoid abuse
	}
	return n, true
}
