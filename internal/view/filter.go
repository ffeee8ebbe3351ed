// Package view computes derived UI state (search, filtering, pagination)
// from product snapshots. Everything here is a pure function: no storage,
// no side effects, no retained state.
package view

import (
	"strings"

	"github.com/selimv/vitrine/internal/models"
)

// Filters narrows a product snapshot. Zero-valued members do not constrain:
// an empty category list admits every category and nil price bounds are
// open-ended. Bounds are inclusive.
type Filters struct {
	Categories []string
	PriceMin   *float64
	PriceMax   *float64
}

// Filter returns the products whose name contains query (case-insensitive)
// and which pass every set filter. The input slice is never modified.
func Filter(products []models.Product, query string, f Filters) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if len(f.Categories) > 0 && !containsCategory(f.Categories, p.Category) {
			continue
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
