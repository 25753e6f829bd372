// Package catalog implements catalog browsing: the filter predicate, the
// pager, the category tab controller that keeps the location and the filter
// set in step, and the per-visit catalog store.
package catalog

import (
	"strings"

	"github.com/HerbHall/renewhub/pkg/models"
)

// Price slider bounds.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 5000
	PriceStep       = 50
)

// PriceRange is a closed price interval. Min is never greater than Max.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewPriceRange returns the interval between a and b, swapping the ends
// when they arrive reversed.
func NewPriceRange(a, b float64) PriceRange {
	if a > b {
		a, b = b, a
	}
	return PriceRange{Min: a, Max: b}
}

// Contains reports whether price lies within the range, ends included.
func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

// FilterState is the set of criteria a product must satisfy to be listed.
type FilterState struct {
	SearchTerm string            `json:"search_term"`
	PriceRange PriceRange        `json:"price_range"`
	Categories []models.Category `json:"categories"`
}

// DefaultFilter returns a filter that matches every product priced within
// the slider bounds.
func DefaultFilter() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Categories: []models.Category{},
	}
}

// HasCategory reports whether c is in the filter's category set.
func (f FilterState) HasCategory(c models.Category) bool {
	for _, fc := range f.Categories {
		if fc == c {
			return true
		}
	}
	return false
}

// WithCategory returns a copy of the filter with c's membership set to
// checked. The category set stays in canonical order without duplicates.
func (f FilterState) WithCategory(c models.Category, checked bool) FilterState {
	next := make([]models.Category, 0, len(f.Categories)+1)
	for _, known := range models.Categories() {
		in := f.HasCategory(known)
		if known == c {
			in = checked
		}
		if in {
			next = append(next, known)
		}
	}
	f.Categories = next
	return f
}

// Matches reports whether p satisfies every criterion in f: the name contains
// the search term (case-insensitive), the price lies in the range, and the
// category is selected (an empty selection selects all categories).
func Matches(p models.Product, f FilterState) bool {
	if f.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.SearchTerm)) {
		return false
	}
	if !f.PriceRange.Contains(p.Price) {
		return false
	}
	if len(f.Categories) > 0 && !f.HasCategory(p.Category) {
		return false
	}
	return true
}

// Filter returns the products matching f, preserving input order.
func Filter(products []models.Product, f FilterState) []models.Product {
	result := make([]models.Product, 0, len(products))
	for i := range products {
		if Matches(products[i], f) {
			result = append(result, products[i])
		}
	}
	return result
}
