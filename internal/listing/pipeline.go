// Package listing is the pure half of the storefront: given a product set and
// one query, it filters, sorts and slices out a single page. No I/O, no
// clock, same inputs always produce the same page.
package listing

import (
	"sort"
	"strings"

	"storefront/internal/domain"
)

const DefaultPageSize = 10

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Query is one listing request. Zero values mean "no filter": empty search
// and category skip their stages, nil price bounds are unbounded.
type Query struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
	Page     int
	PageSize int
}

// Page is the pipeline output: the slice to render plus everything a caller
// needs for "showing X-Y of Z" and pager controls.
type Page struct {
	Products   []domain.Product `json:"products"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// Run applies stages in fixed order: search, category, min price, max price,
// sort, paginate. The input slice is never mutated.
func Run(products []domain.Product, q Query) Page {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	filtered := append([]domain.Product(nil), products...)

	if q.Search != "" {
		term := strings.ToLower(q.Search)
		filtered = keep(filtered, func(p domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Title), term)
		})
	}
	if q.Category != "" {
		filtered = keep(filtered, func(p domain.Product) bool { return p.Category == q.Category })
	}
	if q.MinPrice != nil {
		min := *q.MinPrice
		filtered = keep(filtered, func(p domain.Product) bool { return p.Price >= min })
	}
	if q.MaxPrice != nil {
		max := *q.MaxPrice
		filtered = keep(filtered, func(p domain.Product) bool { return p.Price <= max })
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	total := len(filtered)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return Page{Products: []domain.Product{}, TotalItems: total, TotalPages: totalPages, Page: q.Page, PageSize: q.PageSize}
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return Page{Products: filtered[start:end], TotalItems: total, TotalPages: totalPages, Page: q.Page, PageSize: q.PageSize}
}

func keep(in []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
