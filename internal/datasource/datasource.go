// Package datasource provides the swappable data providers behind both front
// ends: Sample serves the embedded catalog and generated forecasts, HTTP
// delegates to the external backend.
package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/backend"
	"github.com/HerbHall/renewhub/internal/config"
	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/pkg/models"
)

// Source is everything the browse, detail, forecast and recommendation
// views read.
type Source interface {
	// Name identifies the provider in logs and the status bar.
	Name() string

	CheckHealth(ctx context.Context) (models.HealthStatus, error)
	LoadCatalog(ctx context.Context) ([]models.Product, error)
	ProductSpecs(ctx context.Context, p models.Product) ([]models.Spec, error)
	SimilarProducts(ctx context.Context, productID, count int) ([]models.ScoredProduct, error)
	UserRecommendations(ctx context.Context, userID, count int) ([]models.ScoredProduct, error)
	CategoryRecommendations(ctx context.Context, category models.Category, count int) ([]models.ScoredProduct, error)
	Forecast(ctx context.Context, periods int) (models.Forecast, error)
	ForecastMetrics(ctx context.Context) (models.ForecastMetrics, error)
	TrainForecast(ctx context.Context) (models.TrainStatus, error)
	TrainRecommender(ctx context.Context) (models.TrainStatus, error)
}

// PlotLinker is implemented by sources that can link to rendered plot images.
type PlotLinker interface {
	PlotURL(periods int, includeHistory bool) string
	ComponentsPlotURL(periods int) string
}

// Kind names a provider in configuration.
type Kind string

const (
	KindSample Kind = "sample"
	KindHTTP   Kind = "http"
)

// ParseKind validates a configured provider name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSample, KindHTTP:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown data source %q", s)
	}
}

// New builds the provider selected by settings.DataSource.
func New(settings config.Settings, logger *zap.Logger, m *metrics.Collector) (Source, error) {
	kind, err := ParseKind(settings.DataSource)
	if err != nil {
		return nil, err
	}
	if kind == KindSample {
		logger.Info("using sample data source")
		return NewSample(), nil
	}

	client, err := backend.New(settings.Backend.URL, settings.Backend.Timeout,
		backend.WithLogger(logger.Named("backend")),
		backend.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	logger.Info("using backend data source", zap.String("url", client.BaseURL()))
	return NewHTTP(client), nil
}
