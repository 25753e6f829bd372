package datasource

import (
	"context"

	"github.com/HerbHall/renewhub/internal/backend"
	"github.com/HerbHall/renewhub/pkg/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

// HTTP reads everything from the external backend. The backend has no
// specification endpoint, so specs are the generic table for the product.
type HTTP struct {
	client *backend.Client
}

// NewHTTP wraps a backend client.
func NewHTTP(client *backend.Client) *HTTP {
	return &HTTP{client: client}
}

func (h *HTTP) Name() string { return string(KindHTTP) }

func (h *HTTP) CheckHealth(ctx context.Context) (models.HealthStatus, error) {
	return h.client.CheckHealth(ctx)
}

func (h *HTTP) LoadCatalog(ctx context.Context) ([]models.Product, error) {
	return h.client.Products(ctx)
}

func (h *HTTP) ProductSpecs(_ context.Context, p models.Product) ([]models.Spec, error) {
	return catalog.DefaultSpecs(p), nil
}

func (h *HTTP) SimilarProducts(ctx context.Context, productID, count int) ([]models.ScoredProduct, error) {
	return h.client.SimilarProducts(ctx, productID, count)
}

func (h *HTTP) UserRecommendations(ctx context.Context, userID, count int) ([]models.ScoredProduct, error) {
	return h.client.UserRecommendations(ctx, userID, count)
}

func (h *HTTP) CategoryRecommendations(ctx context.Context, category models.Category, count int) ([]models.ScoredProduct, error) {
	return h.client.CategoryRecommendations(ctx, category, count)
}

func (h *HTTP) Forecast(ctx context.Context, periods int) (models.Forecast, error) {
	return h.client.Forecast(ctx, periods)
}

func (h *HTTP) ForecastMetrics(ctx context.Context) (models.ForecastMetrics, error) {
	return h.client.ForecastMetrics(ctx)
}

func (h *HTTP) TrainForecast(ctx context.Context) (models.TrainStatus, error) {
	return h.client.TrainForecast(ctx)
}

// TrainRecommender retrains the backend recommender on its own sample data.
func (h *HTTP) TrainRecommender(ctx context.Context) (models.TrainStatus, error) {
	return h.client.TrainRecommender(ctx, nil)
}

func (h *HTTP) PlotURL(periods int, includeHistory bool) string {
	return h.client.PlotURL(periods, includeHistory)
}

func (h *HTTP) ComponentsPlotURL(periods int) string {
	return h.client.ComponentsPlotURL(periods)
}
