// Package backend is the HTTP client for the external forecasting and
// recommender service. Calls are single-shot: there are no retries and no
// caching, and every failure is classified as ErrNetworkUnreachable,
// *StatusError or ErrInvalidResponse.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/internal/version"
	"github.com/HerbHall/renewhub/pkg/catalog"
	"github.com/HerbHall/renewhub/pkg/models"
)

// DefaultTimeout bounds a single backend call when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// Client talks to the backend REST API rooted at baseURL (".../api").
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-call debug and warning output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every call on the collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the API at baseURL, e.g. http://backend:5000/api.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpointURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func countQuery(count int) url.Values {
	return url.Values{"count": []string{strconv.Itoa(count)}}
}

// CheckHealth calls GET /health. A reachable backend that reports any status
// other than "healthy" yields the status together with ErrBackendUnhealthy.
func (c *Client) CheckHealth(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, nil, &status); err != nil {
		return models.HealthStatus{}, err
	}
	if !status.Healthy() {
		return status, fmt.Errorf("backend health %q: %w", status.Status, ErrBackendUnhealthy)
	}
	return status, nil
}

// Products fetches the full catalog from GET /products. Every record must
// be valid and ids must be unique.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "products", http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	if err := catalog.ValidateProducts(products); err != nil {
		return nil, fmt.Errorf("backend products: %w: %w", ErrInvalidResponse, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// SimilarProducts calls GET /recommender/similar/{id}?count=N.
func (c *Client) SimilarProducts(ctx context.Context, productID, count int) ([]models.ScoredProduct, error) {
	var resp struct {
		SimilarProducts []models.ScoredProduct `json:"similar_products"`
	}
	path := "/recommender/similar/" + strconv.Itoa(productID)
	if err := c.do(ctx, "similar", http.MethodGet, path, countQuery(count), nil, &resp); err != nil {
		return nil, err
	}
	return c.validateScored(resp.SimilarProducts)
}

// UserRecommendations calls GET /recommender/recommend/user/{id}?count=N.
func (c *Client) UserRecommendations(ctx context.Context, userID, count int) ([]models.ScoredProduct, error) {
	var resp struct {
		Recommendations []models.ScoredProduct `json:"recommendations"`
	}
	path := "/recommender/recommend/user/" + strconv.Itoa(userID)
	if err := c.do(ctx, "recommend_user", http.MethodGet, path, countQuery(count), nil, &resp); err != nil {
		return nil, err
	}
	return c.validateScored(resp.Recommendations)
}

// CategoryRecommendations calls GET /recommender/recommend/category/{category}?count=N.
func (c *Client) CategoryRecommendations(ctx context.Context, category models.Category, count int) ([]models.ScoredProduct, error) {
	var resp struct {
		Recommendations []models.ScoredProduct `json:"recommendations"`
	}
	path := "/recommender/recommend/category/" + url.PathEscape(string(category))
	if err := c.do(ctx, "recommend_category", http.MethodGet, path, countQuery(count), nil, &resp); err != nil {
		return nil, err
	}
	return c.validateScored(resp.Recommendations)
}

// TrainRecommender calls POST /recommender/train. A nil payload sends no
// body, so the backend trains on its own sample data.
func (c *Client) TrainRecommender(ctx context.Context, payload any) (models.TrainStatus, error) {
	var status models.TrainStatus
	err := c.do(ctx, "recommender_train", http.MethodPost, "/recommender/train", nil, payload, &status)
	return status, err
}

// Forecast calls GET /forecast/predict?periods=N.
func (c *Client) Forecast(ctx context.Context, periods int) (models.Forecast, error) {
	var f models.Forecast
	q := url.Values{"periods": []string{strconv.Itoa(periods)}}
	if err := c.do(ctx, "forecast_predict", http.MethodGet, "/forecast/predict", q, nil, &f); err != nil {
		return models.Forecast{}, err
	}
	if !f.Success {
		return models.Forecast{}, fmt.Errorf("forecast: %s: %w", f.Message, ErrInvalidResponse)
	}
	return f, nil
}

// ForecastMetrics calls GET /forecast/metrics.
func (c *Client) ForecastMetrics(ctx context.Context) (models.ForecastMetrics, error) {
	var resp struct {
		Success bool                   `json:"success"`
		Metrics models.ForecastMetrics `json:"metrics"`
		Message string                 `json:"message"`
	}
	if err := c.do(ctx, "forecast_metrics", http.MethodGet, "/forecast/metrics", nil, nil, &resp); err != nil {
		return models.ForecastMetrics{}, err
	}
	if !resp.Success {
		return models.ForecastMetrics{}, fmt.Errorf("forecast metrics: %s: %w", resp.Message, ErrInvalidResponse)
	}
	return resp.Metrics, nil
}

// TrainForecast calls POST /forecast/train with no historical data.
func (c *Client) TrainForecast(ctx context.Context) (models.TrainStatus, error) {
	var status models.TrainStatus
	err := c.do(ctx, "forecast_train", http.MethodPost, "/forecast/train", nil, struct{}{}, &status)
	return status, err
}

// PlotURL is the image URL of the forecast plot. It is never fetched here.
func (c *Client) PlotURL(periods int, includeHistory bool) string {
	q := url.Values{
		"periods":         []string{strconv.Itoa(periods)},
		"include_history": []string{strconv.FormatBool(includeHistory)},
	}
	return c.endpointURL("/forecast/plot", q)
}

// ComponentsPlotURL is the image URL of the forecast components plot.
func (c *Client) ComponentsPlotURL(periods int) string {
	q := url.Values{"periods": []string{strconv.Itoa(periods)}}
	return c.endpointURL("/forecast/plot/components", q)
}

func (c *Client) validateScored(items []models.ScoredProduct) ([]models.ScoredProduct, error) {
	for i := range items {
		if err := catalog.ValidateProduct(items[i].Product); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
	}
	if items == nil {
		items = []models.ScoredProduct{}
	}
	return items, nil
}

// do performs one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, payload, out any) error {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		c.metrics.RecordBackendCall(endpoint, outcome, time.Since(start))
	}()

	var body io.Reader
	if payload != nil {
		buf, mErr := json.Marshal(payload)
		if mErr != nil {
			outcome = metrics.OutcomeInvalidData
			return fmt.Errorf("backend %s: encode request: %w", endpoint, mErr)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path, query), body)
	if err != nil {
		outcome = metrics.OutcomeNetwork
		return fmt.Errorf("backend %s: build request: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = metrics.OutcomeNetwork
		c.logger.Warn("backend call failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return classifyTransport(endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeStatus
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = metrics.OutcomeDecode
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return fmt.Errorf("backend %s: decode: %w: %w", endpoint, ErrInvalidResponse, err)
	}
	return nil
}

// errorMessage extracts "message" or "error" from a JSON error body, falling
// back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
