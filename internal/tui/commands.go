package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/internal/datasource"
	"github.com/HerbHall/renewhub/internal/forecast"
	"github.com/HerbHall/renewhub/internal/health"
	"github.com/HerbHall/renewhub/internal/recommend"
	"github.com/HerbHall/renewhub/pkg/models"
)

// loadTimeout bounds every load issued from the client.
const loadTimeout = 30 * time.Second

type healthMsg struct {
	result health.Result
}

type catalogMsg struct {
	requestID int
	products  []models.Product
	err       error
}

type detailMsg struct {
	requestID int
	detail    catalog.Detail
	err       error
}

type forecastMsg struct {
	requestID int
	view      forecast.View
	trained   *models.TrainStatus
	err       error
}

type recsMsg struct {
	requestID int
	view      recommend.View
	err       error
}

func checkHealth(b *health.Banner) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return healthMsg{result: b.Check(ctx)}
	}
}

func loadCatalog(store *catalog.Store, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		products, err := store.Load(ctx)
		return catalogMsg{requestID: requestID, products: products, err: err}
	}
}

func loadDetail(src datasource.Source, store *catalog.Store, id, requestID int, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		d, err := catalog.LoadDetail(ctx, src, store, id, logger)
		return detailMsg{requestID: requestID, detail: d, err: err}
	}
}

func loadForecast(l *forecast.Loader, periods, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		v, err := l.Load(ctx, periods)
		return forecastMsg{requestID: requestID, view: v, err: err}
	}
}

func trainForecast(l *forecast.Loader, periods, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		status, v, err := l.Train(ctx, periods)
		return forecastMsg{requestID: requestID, view: v, trained: &status, err: err}
	}
}

func loadRecommendations(l *recommend.Loader, q recommend.Query, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		v, err := l.Load(ctx, q)
		return recsMsg{requestID: requestID, view: v, err: err}
	}
}
