// Package catalog embeds the sample product catalog and validates product
// records arriving from any data source.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/renewhub/pkg/models"
)

//go:embed catalog.yaml
var catalogRawData []byte

// catalogFile is the top-level structure of the embedded YAML.
type catalogFile struct {
	Products []catalogEntry `yaml:"products"`
}

type catalogEntry struct {
	models.Product `yaml:",inline"`
	Specs          []models.Spec `yaml:"specs"`
}

// Catalog provides lazy-loaded access to the embedded sample catalog.
type Catalog struct {
	once     sync.Once
	products []models.Product
	specs    map[int][]models.Spec
	err      error
}

// NewCatalog creates a new Catalog that will parse the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Products returns a copy of all sample products in catalog order.
func (c *Catalog) Products() ([]models.Product, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]models.Product, len(c.products))
	copy(cp, c.products)
	return cp, nil
}

// Specs returns the specification rows for a product. Products without
// explicit rows get a generic table derived from their efficiency.
func (c *Catalog) Specs(id int) ([]models.Spec, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	if rows, ok := c.specs[id]; ok {
		cp := make([]models.Spec, len(rows))
		copy(cp, rows)
		return cp, nil
	}
	for i := range c.products {
		if c.products[i].ID == id {
			return DefaultSpecs(c.products[i]), nil
		}
	}
	return nil, nil
}

// DefaultSpecs builds the fallback specification table for a product.
func DefaultSpecs(p models.Product) []models.Spec {
	return []models.Spec{
		{Name: "Efficiency", Value: fmt.Sprintf("%d%%", p.EfficiencyPercent())},
		{Name: "Warranty", Value: "3 years"},
		{Name: "Made In", Value: "USA"},
	}
}

// load parses and validates the embedded YAML catalog data.
func (c *Catalog) load() {
	var f catalogFile
	if err := yaml.Unmarshal(catalogRawData, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}

	products := make([]models.Product, 0, len(f.Products))
	specs := make(map[int][]models.Spec)
	for _, e := range f.Products {
		products = append(products, e.Product)
		if len(e.Specs) > 0 {
			specs[e.ID] = e.Specs
		}
	}
	if err := ValidateProducts(products); err != nil {
		c.err = fmt.Errorf("catalog: %w", err)
		return
	}
	c.products = products
	c.specs = specs
}
