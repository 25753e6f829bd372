package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/internal/module"
	"github.com/HerbHall/renewhub/internal/version"
	"github.com/HerbHall/renewhub/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HealthChecker reports the health of the external backend.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (models.HealthStatus, error)
}

// Options tune the optional parts of the server.
type Options struct {
	// RateLimit is the sustained request rate per second; zero disables limiting.
	RateLimit float64
	Burst     int
	Metrics   *metrics.Collector
	Health    HealthChecker
}

// Server is the RenewHub HTTP view service.
type Server struct {
	httpServer *http.Server
	registry   *module.Registry
	logger     *zap.Logger
	mux        *http.ServeMux
	limiter    *rate.Limiter
	opts       Options
}

// New creates a new Server instance with every enabled module mounted.
func New(addr string, reg *module.Registry, logger *zap.Logger, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		registry: reg,
		logger:   logger,
		mux:      mux,
		opts:     opts,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	s.registerCoreRoutes()
	s.mountModuleRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.rateLimit(h)
	h = s.opts.Metrics.Middleware(h)
	return h
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/modules", s.handleModules)
	if s.opts.Metrics != nil {
		s.mux.Handle("GET /metrics", s.opts.Metrics.Handler())
	}
}

// mountModuleRoutes registers all module routes under /api/v1/{module}/.
func (s *Server) mountModuleRoutes() {
	for name, routes := range s.registry.AllRoutes() {
		for _, route := range routes {
			pattern := fmt.Sprintf("%s /api/v1/%s%s", route.Method, name, route.Path)
			s.mux.HandleFunc(pattern, route.Handler)
			s.logger.Debug("mounted route",
				zap.String("module", name),
				zap.String("pattern", pattern),
			)
		}
	}
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.logger.Warn("rate limited", zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "1")
			RateLimited(w, "request rate exceeded, retry shortly", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

type healthResponse struct {
	Status  string               `json:"status"`
	Service string               `json:"service"`
	Version map[string]string    `json:"version"`
	Backend *models.HealthStatus `json:"backend,omitempty"`
}

// handleHealth reports service status. Backend trouble degrades the status
// but the service itself still answers 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Service: "renewhub",
		Version: version.Map(),
	}

	if s.opts.Health != nil {
		status, err := s.opts.Health.CheckHealth(r.Context())
		if err != nil {
			s.logger.Warn("backend health check failed", zap.Error(err))
			status = models.HealthStatus{Status: "unreachable", Message: err.Error()}
		}
		if !status.Healthy() {
			resp.Status = "degraded"
		}
		resp.Backend = &status
	}

	w.Header().Set("X-RenewHub-Version", version.Short())
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModules(w http.ResponseWriter, _ *http.Request) {
	type moduleResponse struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	mods := s.registry.Enabled()
	info := make([]moduleResponse, 0, len(mods))
	for _, m := range mods {
		info = append(info, moduleResponse{Name: m.Name(), Description: m.Description()})
	}
	w.Header().Set("X-RenewHub-Version", version.Short())
	WriteJSON(w, http.StatusOK, info)
}
