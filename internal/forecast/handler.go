package forecast

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/module"
	"github.com/HerbHall/renewhub/internal/server"
	"github.com/HerbHall/renewhub/pkg/models"
)

// Compile-time interface check.
var _ module.Module = (*Module)(nil)

// Module serves the forecast view under /api/v1/forecast.
type Module struct {
	src            Source
	loader         *Loader
	logger         *zap.Logger
	defaultPeriods int
}

// NewModule creates the forecast module over src.
func NewModule(src Source) *Module {
	return &Module{
		src:            src,
		loader:         NewLoader(src, nil),
		logger:         zap.NewNop(),
		defaultPeriods: DefaultPeriods,
	}
}

func (m *Module) Name() string        { return "forecast" }
func (m *Module) Description() string { return "Energy demand forecast with model metrics" }

// Init reads the optional default_periods setting.
func (m *Module) Init(config *viper.Viper, logger *zap.Logger) error {
	m.logger = logger
	m.loader = NewLoader(m.src, logger)
	if config.IsSet("default_periods") {
		n := config.GetInt("default_periods")
		if !ValidPeriods(n) {
			return fmt.Errorf("forecast: default_periods must be one of %v, got %d", periodOptions, n)
		}
		m.defaultPeriods = n
	}
	return nil
}

func (m *Module) Routes() []module.Route {
	return []module.Route{
		{Method: http.MethodGet, Path: "/predict", Handler: m.handlePredict},
		{Method: http.MethodPost, Path: "/train", Handler: m.handleTrain},
		{Method: http.MethodGet, Path: "/periods", Handler: m.handlePeriods},
	}
}

func (m *Module) periodsFromRequest(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("periods")
	if raw == "" {
		return m.defaultPeriods, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !ValidPeriods(n) {
		return 0, fmt.Errorf("periods must be one of %v", periodOptions)
	}
	return n, nil
}

// handlePredict returns the forecast view for the requested horizon.
//
//	@Summary		Forecast energy demand
//	@Tags			forecast
//	@Produce		json
//	@Param			periods	query	int	false	"Horizon in hours (12, 24, 48, 72, 168)"	default(24)
//	@Success		200	{object}	View
//	@Failure		400	{object}	server.Problem
//	@Failure		502	{object}	server.Problem
//	@Router			/forecast/predict [get]
func (m *Module) handlePredict(w http.ResponseWriter, r *http.Request) {
	periods, err := m.periodsFromRequest(r)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	v, err := m.loader.Load(r.Context(), periods)
	if err != nil {
		m.logger.Error("failed to load forecast", zap.Int("periods", periods), zap.Error(err))
		server.BadGateway(w, "Failed to load forecast data. Please try again later.", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, v)
}

type trainResponse struct {
	Status models.TrainStatus `json:"status"`
	View   View               `json:"view"`
}

func (m *Module) handleTrain(w http.ResponseWriter, r *http.Request) {
	periods, err := m.periodsFromRequest(r)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	status, v, err := m.loader.Train(r.Context(), periods)
	if err != nil {
		m.logger.Error("failed to train forecaster", zap.Error(err))
		server.BadGateway(w, "Failed to train model. Please try again later.", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, trainResponse{Status: status, View: v})
}

type periodResponse struct {
	Hours   int    `json:"hours"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

func (m *Module) handlePeriods(w http.ResponseWriter, _ *http.Request) {
	resp := make([]periodResponse, 0, len(periodOptions))
	for _, p := range periodOptions {
		resp = append(resp, periodResponse{Hours: p, Label: PeriodLabel(p), Default: p == m.defaultPeriods})
	}
	server.WriteJSON(w, http.StatusOK, resp)
}
