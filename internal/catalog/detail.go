package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/pkg/models"
)

// SimilarCount is the number of similar products shown on a detail page.
const SimilarCount = 4

// DetailSource supplies everything a product detail page shows.
type DetailSource interface {
	Loader
	ProductSpecs(ctx context.Context, p models.Product) ([]models.Spec, error)
	SimilarProducts(ctx context.Context, id, count int) ([]models.ScoredProduct, error)
}

// Detail is the product detail page.
type Detail struct {
	Product           models.Product         `json:"product"`
	EfficiencyPercent int                    `json:"efficiency_percent"`
	Specs             []models.Spec          `json:"specs"`
	Similar           []models.ScoredProduct `json:"similar"`
}

// LoadDetail resolves id against a loaded store and gathers the specs and
// similar products. Only a missing product is an error; failures fetching
// specs or similar products are logged and leave those sections empty.
func LoadDetail(ctx context.Context, src DetailSource, store *Store, id int, logger *zap.Logger) (Detail, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := store.Load(ctx); err != nil {
		return Detail{}, err
	}
	p, err := store.Find(id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Product:           p,
		EfficiencyPercent: p.EfficiencyPercent(),
		Specs:             []models.Spec{},
		Similar:           []models.ScoredProduct{},
	}

	specs, err := src.ProductSpecs(ctx, p)
	if err != nil {
		logger.Warn("failed to load product specs", zap.Int("product_id", id), zap.Error(err))
	} else if specs != nil {
		d.Specs = specs
	}

	similar, err := src.SimilarProducts(ctx, id, SimilarCount)
	if err != nil {
		logger.Warn("failed to load similar products", zap.Int("product_id", id), zap.Error(err))
	} else if similar != nil {
		d.Similar = similar
	}

	return d, nil
}
