package models

import "math"

// Category classifies a renewable-energy product.
type Category string

const (
	CategorySolar      Category = "solar"
	CategoryWind       Category = "wind"
	CategoryStorage    Category = "storage"
	CategoryHydro      Category = "hydro"
	CategoryBiomass    Category = "biomass"
	CategoryEfficiency Category = "efficiency"
)

// Categories returns every category in canonical display order.
func Categories() []Category {
	return []Category{
		CategorySolar,
		CategoryWind,
		CategoryStorage,
		CategoryHydro,
		CategoryBiomass,
		CategoryEfficiency,
	}
}

// ParseCategory returns the category named by s and whether it is known.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if _, ok := categoryLabels[c]; ok {
		return c, true
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Product is a catalog item. Products are immutable once loaded and are
// identified by ID.
type Product struct {
	ID          int      `json:"id" yaml:"id" validate:"required,gt=0"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Category    Category `json:"category" yaml:"category" validate:"required,oneof=solar wind storage hydro biomass efficiency"`
	Efficiency  float64  `json:"efficiency" yaml:"efficiency" validate:"gte=0,lte=1"`
	Price       float64  `json:"price" yaml:"price" validate:"gte=0"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// EfficiencyPercent returns the efficiency rounded to a whole percentage.
func (p Product) EfficiencyPercent() int {
	return int(math.Round(p.Efficiency * 100))
}

// Spec is a single row of a product's specification table.
type Spec struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ScoredProduct is a product returned by the recommender, annotated with
// whichever score the recommendation kind produces.
type ScoredProduct struct {
	Product
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	PredictedRating *float64 `json:"predicted_rating,omitempty"`
}
