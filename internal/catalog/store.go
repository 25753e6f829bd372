package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/pkg/models"
)

// ErrProductNotFound is returned when a product id is absent from the catalog.
var ErrProductNotFound = errors.New("product not found")

// Loader fetches the full product list.
type Loader interface {
	LoadCatalog(ctx context.Context) ([]models.Product, error)
}

// Store holds the catalog for a single page visit. The first Load fetches
// from the loader; later calls return that outcome. A failed load leaves an
// empty catalog and is not retried.
type Store struct {
	loader Loader
	logger *zap.Logger

	once     sync.Once
	products []models.Product
	err      error
}

// NewStore creates a store for one visit.
func NewStore(loader Loader, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{loader: loader, logger: logger}
}

// Load fetches the catalog once and returns it.
func (s *Store) Load(ctx context.Context) ([]models.Product, error) {
	s.once.Do(func() {
		products, err := s.loader.LoadCatalog(ctx)
		if err != nil {
			s.logger.Warn("catalog load failed", zap.Error(err))
			s.err = err
			s.products = []models.Product{}
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		s.products = products
		s.logger.Debug("catalog loaded", zap.Int("products", len(products)))
	})
	return s.products, s.err
}

// Products returns the loaded catalog, empty before Load or after a failure.
func (s *Store) Products() []models.Product {
	if s.products == nil {
		return []models.Product{}
	}
	return s.products
}

// Err returns the load error, if any.
func (s *Store) Err() error { return s.err }

// Find returns the product with the given id.
func (s *Store) Find(id int) (models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return s.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
