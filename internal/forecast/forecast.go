// Package forecast builds the energy demand forecast view: the selectable
// horizon, the chart series and summary, and the model error metrics.
package forecast

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/renewhub/pkg/models"
)

// DefaultPeriods is the horizon shown when none is chosen.
const DefaultPeriods = 24

var periodOptions = []int{12, 24, 48, 72, 168}

// PeriodOptions returns the selectable horizons in hours.
func PeriodOptions() []int {
	out := make([]int, len(periodOptions))
	copy(out, periodOptions)
	return out
}

// ValidPeriods reports whether n is one of the selectable horizons.
func ValidPeriods(n int) bool {
	for _, p := range periodOptions {
		if p == n {
			return true
		}
	}
	return false
}

// PeriodLabel is the display label of a horizon.
func PeriodLabel(n int) string {
	if n == 168 {
		return "1 Week"
	}
	return fmt.Sprintf("%d Hours", n)
}

// Source supplies forecasts, metrics and retraining.
type Source interface {
	Forecast(ctx context.Context, periods int) (models.Forecast, error)
	ForecastMetrics(ctx context.Context) (models.ForecastMetrics, error)
	TrainForecast(ctx context.Context) (models.TrainStatus, error)
}

// PlotLinker links to server-rendered plot images.
type PlotLinker interface {
	PlotURL(periods int, includeHistory bool) string
	ComponentsPlotURL(periods int) string
}

// View is the forecast page.
type View struct {
	Periods           int                     `json:"periods"`
	Title             string                  `json:"title"`
	Chart             Chart                   `json:"chart"`
	Summary           Summary                 `json:"summary"`
	Metrics           *models.ForecastMetrics `json:"metrics,omitempty"`
	PlotURL           string                  `json:"plot_url,omitempty"`
	ComponentsPlotURL string                  `json:"components_plot_url,omitempty"`
}

// MetricsText renders the error metrics the way the page shows them, or
// "No metrics available".
func (v View) MetricsText() string {
	if v.Metrics == nil {
		return "No metrics available"
	}
	return fmt.Sprintf("MAE %.2f kW  RMSE %.2f kW", v.Metrics.MAE, v.Metrics.RMSE)
}

// Loader assembles forecast views from a source.
type Loader struct {
	src    Source
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(src Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{src: src, logger: logger}
}

// Load fetches the forecast and the metrics concurrently. A forecast failure
// fails the view; a metrics failure is logged and leaves Metrics nil.
func (l *Loader) Load(ctx context.Context, periods int) (View, error) {
	if !ValidPeriods(periods) {
		return View{}, fmt.Errorf("periods must be one of %v, got %d", periodOptions, periods)
	}

	var (
		f models.Forecast
		m *models.ForecastMetrics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		f, err = l.src.Forecast(gctx, periods)
		if err != nil {
			return fmt.Errorf("load forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		metrics, err := l.src.ForecastMetrics(gctx)
		if err != nil {
			l.logger.Warn("failed to load forecast metrics", zap.Error(err))
			return nil
		}
		m = &metrics
		return nil
	})
	if err := g.Wait(); err != nil {
		return View{}, err
	}

	v := View{
		Periods: periods,
		Title:   fmt.Sprintf("Energy Demand Forecast (Next %d Hours)", periods),
		Chart:   BuildChart(f.Points),
		Summary: Summarize(f.Points),
		Metrics: m,
	}
	if linker, ok := l.src.(PlotLinker); ok {
		v.PlotURL = linker.PlotURL(periods, true)
		v.ComponentsPlotURL = linker.ComponentsPlotURL(periods)
	}
	return v, nil
}

// Train retrains the model and reloads the view for periods.
func (l *Loader) Train(ctx context.Context, periods int) (models.TrainStatus, View, error) {
	status, err := l.src.TrainForecast(ctx)
	if err != nil {
		return models.TrainStatus{}, View{}, fmt.Errorf("train forecaster: %w", err)
	}
	l.logger.Info("forecaster trained", zap.Bool("success", status.Success), zap.String("message", status.Message))

	v, err := l.Load(ctx, periods)
	if err != nil {
		return status, View{}, err
	}
	return status, v, nil
}
