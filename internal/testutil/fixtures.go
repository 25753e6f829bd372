package testutil

import (
	"github.com/HerbHall/renewhub/pkg/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

// NewProduct returns a valid Product with sensible defaults.
// Override individual fields with options.
func NewProduct(opts ...func(*models.Product)) models.Product {
	p := models.Product{
		ID:          1,
		Name:        "Test Panel",
		Category:    models.CategorySolar,
		Efficiency:  0.2,
		Price:       100,
		Description: "fixture product",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithID sets the product id.
func WithID(id int) func(*models.Product) {
	return func(p *models.Product) { p.ID = id }
}

// WithName sets the product name.
func WithName(name string) func(*models.Product) {
	return func(p *models.Product) { p.Name = name }
}

// WithCategory sets the product category.
func WithCategory(c models.Category) func(*models.Product) {
	return func(p *models.Product) { p.Category = c }
}

// WithPrice sets the product price.
func WithPrice(price float64) func(*models.Product) {
	return func(p *models.Product) { p.Price = price }
}

// WithEfficiency sets the product efficiency fraction.
func WithEfficiency(e float64) func(*models.Product) {
	return func(p *models.Product) { p.Efficiency = e }
}

// SampleProducts returns the ten products of the embedded sample catalog.
func SampleProducts() []models.Product {
	products, err := catalog.NewCatalog().Products()
	if err != nil {
		panic("testutil.SampleProducts: " + err.Error())
	}
	return products
}

// ProductIDs extracts ids in order, for compact assertions.
func ProductIDs(products []models.Product) []int {
	ids := make([]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	return ids
}

// NumberedProducts returns n products with ids 1..n, all in category solar
// priced 100, for pagination tests.
func NumberedProducts(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = NewProduct(WithID(i + 1))
	}
	return out
}
