package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/HerbHall/renewhub/pkg/models"
)

// FakeBackend is an in-process stand-in for the forecasting/recommender
// service. It serves the sample catalog and counts calls per endpoint.
type FakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	health   string
	failures map[string]int
	calls    map[string]int
}

// NewFakeBackend starts a fake backend that is closed when t finishes.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		health:   models.HealthHealthy,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", f.wrap("health", f.handleHealth))
	mux.HandleFunc("GET /api/products", f.wrap("products", f.handleProducts))
	mux.HandleFunc("GET /api/recommender/similar/{id}", f.wrap("similar", f.handleSimilar))
	mux.HandleFunc("GET /api/recommender/recommend/user/{id}", f.wrap("recommend_user", f.handleRecommendations))
	mux.HandleFunc("GET /api/recommender/recommend/category/{category}", f.wrap("recommend_category", f.handleRecommendations))
	mux.HandleFunc("POST /api/recommender/train", f.wrap("recommender_train", f.handleTrain))
	mux.HandleFunc("GET /api/forecast/predict", f.wrap("forecast_predict", f.handleForecast))
	mux.HandleFunc("GET /api/forecast/metrics", f.wrap("forecast_metrics", f.handleMetrics))
	mux.HandleFunc("POST /api/forecast/train", f.wrap("forecast_train", f.handleTrain))

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API root, ending in /api.
func (f *FakeBackend) URL() string {
	return f.server.URL + "/api"
}

// Client returns an http.Client wired to the fake server.
func (f *FakeBackend) Client() *http.Client {
	return f.server.Client()
}

// SetHealth changes the status reported by /api/health.
func (f *FakeBackend) SetHealth(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.health = status
}

// Fail makes the named endpoint answer with the given HTTP status.
func (f *FakeBackend) Fail(endpoint string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[endpoint] = status
}

// Calls returns how many requests the named endpoint received.
func (f *FakeBackend) Calls(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *FakeBackend) wrap(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[endpoint]++
		status, failing := f.failures[endpoint]
		f.mu.Unlock()

		if failing {
			writeFakeJSON(w, status, map[string]any{"success": false, "message": endpoint + " failed"})
			return
		}
		h(w, r)
	}
}

func (f *FakeBackend) handleHealth(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	status := f.health
	f.mu.Unlock()
	writeFakeJSON(w, http.StatusOK, models.HealthStatus{Status: status, Message: "API is running"})
}

func (f *FakeBackend) handleProducts(w http.ResponseWriter, _ *http.Request) {
	writeFakeJSON(w, http.StatusOK, SampleProducts())
}

func (f *FakeBackend) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	count := queryCount(r)
	score := 0.8

	out := []models.ScoredProduct{}
	for _, p := range SampleProducts() {
		if p.ID == id || len(out) >= count {
			continue
		}
		out = append(out, models.ScoredProduct{Product: p, SimilarityScore: &score})
	}
	writeFakeJSON(w, http.StatusOK, map[string]any{"similar_products": out})
}

func (f *FakeBackend) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	count := queryCount(r)
	category := models.Category(r.PathValue("category"))

	out := []models.ScoredProduct{}
	for _, p := range SampleProducts() {
		if len(out) >= count {
			break
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, models.ScoredProduct{Product: p})
	}
	writeFakeJSON(w, http.StatusOK, map[string]any{"recommendations": out})
}

func (f *FakeBackend) handleTrain(w http.ResponseWriter, _ *http.Request) {
	writeFakeJSON(w, http.StatusOK, models.TrainStatus{Success: true, Message: "trained with sample data"})
}

func (f *FakeBackend) handleForecast(w http.ResponseWriter, r *http.Request) {
	periods, err := strconv.Atoi(r.URL.Query().Get("periods"))
	if err != nil || periods <= 0 {
		periods = 24
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.ForecastPoint, periods)
	for i := range points {
		y := 100 + float64(i)
		points[i] = models.ForecastPoint{
			DS:        start.Add(time.Duration(i) * time.Hour),
			YHat:      y,
			YHatLower: y - 15,
			YHatUpper: y + 15,
		}
	}
	writeFakeJSON(w, http.StatusOK, models.Forecast{Success: true, Periods: periods, Points: points})
}

func (f *FakeBackend) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeFakeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"metrics": models.ForecastMetrics{MAE: 8.32, RMSE: 12.47},
	})
}

func queryCount(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
