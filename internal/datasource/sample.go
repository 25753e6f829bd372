package datasource

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/HerbHall/renewhub/pkg/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

// Sample metrics reported by the sample forecast model.
const (
	SampleMAE  = 8.32
	SampleRMSE = 12.47
)

// Sample serves the embedded catalog and synthetic forecasts. It never
// touches the network and always reports healthy.
type Sample struct {
	catalog *catalog.Catalog
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// SampleOption configures a Sample source.
type SampleOption func(*Sample)

// WithRand fixes the random source, for deterministic tests.
func WithRand(r *rand.Rand) SampleOption {
	return func(s *Sample) { s.rng = r }
}

// WithClock replaces time.Now as the forecast start.
func WithClock(now func() time.Time) SampleOption {
	return func(s *Sample) { s.now = now }
}

// NewSample creates a sample source over the embedded catalog.
func NewSample(opts ...SampleOption) *Sample {
	s := &Sample{
		catalog: catalog.NewCatalog(),
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sample) Name() string { return string(KindSample) }

func (s *Sample) CheckHealth(context.Context) (models.HealthStatus, error) {
	return models.HealthStatus{Status: models.HealthHealthy, Message: "sample data"}, nil
}

func (s *Sample) LoadCatalog(context.Context) ([]models.Product, error) {
	return s.catalog.Products()
}

func (s *Sample) ProductSpecs(_ context.Context, p models.Product) ([]models.Spec, error) {
	specs, err := s.catalog.Specs(p.ID)
	if err != nil {
		return nil, err
	}
	if specs == nil {
		specs = catalog.DefaultSpecs(p)
	}
	return specs, nil
}

// SimilarProducts returns other products of the same category in catalog
// order with a similarity score drawn from [0.5, 1).
func (s *Sample) SimilarProducts(_ context.Context, productID, count int) ([]models.ScoredProduct, error) {
	products, err := s.catalog.Products()
	if err != nil {
		return nil, err
	}

	var category models.Category
	found := false
	for _, p := range products {
		if p.ID == productID {
			category, found = p.Category, true
			break
		}
	}

	out := []models.ScoredProduct{}
	if !found {
		return out, nil
	}
	for _, p := range products {
		if len(out) >= count {
			break
		}
		if p.Category != category || p.ID == productID {
			continue
		}
		score := 0.5 + s.randFloat()*0.5
		out = append(out, models.ScoredProduct{Product: p, SimilarityScore: &score})
	}
	return out, nil
}

// UserRecommendations shuffles the catalog and returns the first count
// products with a predicted rating drawn from [3, 5). The user id only
// selects the profile label; sample picks do not depend on it.
func (s *Sample) UserRecommendations(_ context.Context, _ int, count int) ([]models.ScoredProduct, error) {
	products, err := s.catalog.Products()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
	s.mu.Unlock()

	n := min(max(count, 0), len(products))
	out := make([]models.ScoredProduct, 0, n)
	for _, p := range products[:n] {
		rating := 3 + s.randFloat()*2
		out = append(out, models.ScoredProduct{Product: p, PredictedRating: &rating})
	}
	return out, nil
}

// CategoryRecommendations returns the most efficient products of category.
func (s *Sample) CategoryRecommendations(_ context.Context, category models.Category, count int) ([]models.ScoredProduct, error) {
	products, err := s.catalog.Products()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Efficiency > matched[j].Efficiency
	})

	out := make([]models.ScoredProduct, 0, len(matched))
	for _, p := range matched[:min(max(count, 0), len(matched))] {
		out = append(out, models.ScoredProduct{Product: p})
	}
	return out, nil
}

// Forecast generates hourly points from the current hour. Demand follows a
// daily sine around 100 with ±5 noise and a 15-20 wide band either side.
func (s *Sample) Forecast(_ context.Context, periods int) (models.Forecast, error) {
	start := s.now().Truncate(time.Hour)
	points := make([]models.ForecastPoint, 0, max(periods, 0))

	for i := range max(periods, 0) {
		ds := start.Add(time.Duration(i) * time.Hour)
		hourEffect := math.Sin(math.Pi*float64(ds.Hour())/12) * 30
		noise := (s.randFloat() - 0.5) * 10
		yhat := 100 + hourEffect + noise

		points = append(points, models.ForecastPoint{
			DS:        ds,
			YHat:      yhat,
			YHatLower: yhat - 15 - s.randFloat()*5,
			YHatUpper: yhat + 15 + s.randFloat()*5,
		})
	}
	return models.Forecast{Success: true, Periods: periods, Points: points}, nil
}

func (s *Sample) ForecastMetrics(context.Context) (models.ForecastMetrics, error) {
	return models.ForecastMetrics{MAE: SampleMAE, RMSE: SampleRMSE}, nil
}

func (s *Sample) TrainForecast(context.Context) (models.TrainStatus, error) {
	return models.TrainStatus{Success: true, Message: "Forecaster trained with sample data"}, nil
}

func (s *Sample) TrainRecommender(context.Context) (models.TrainStatus, error) {
	return models.TrainStatus{Success: true, Message: "Recommender trained with sample data"}, nil
}

func (s *Sample) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
