package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/module"
	"github.com/HerbHall/renewhub/internal/server"
	"github.com/HerbHall/renewhub/pkg/models"
)

const (
	loadFailedDetail  = "Failed to load recommendations. Please try again later."
	trainFailedDetail = "Failed to train the recommender. Please try again later."
)

// Compile-time interface check.
var _ module.Module = (*Module)(nil)

// Module serves recommendations under /api/v1/recommend.
type Module struct {
	src    Source
	loader *Loader
	logger *zap.Logger
}

// NewModule creates the recommendation module over src.
func NewModule(src Source) *Module {
	return &Module{src: src, loader: NewLoader(src, nil), logger: zap.NewNop()}
}

func (m *Module) Name() string        { return "recommend" }
func (m *Module) Description() string { return "Personalized and category product recommendations" }

func (m *Module) Init(_ *viper.Viper, logger *zap.Logger) error {
	m.logger = logger
	m.loader = NewLoader(m.src, logger)
	return nil
}

func (m *Module) Routes() []module.Route {
	return []module.Route{
		{Method: http.MethodGet, Path: "/profiles", Handler: m.handleProfiles},
		{Method: http.MethodGet, Path: "/user/{id}", Handler: m.handleUser},
		{Method: http.MethodGet, Path: "/category/{category}", Handler: m.handleCategory},
		{Method: http.MethodPost, Path: "/train", Handler: m.handleTrain},
	}
}

func countFromRequest(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return DefaultCount, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !ValidCount(n) {
		return 0, false
	}
	return n, true
}

func (m *Module) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	type profileResponse struct {
		UserProfile
		Label string `json:"label"`
	}
	ps := Profiles()
	resp := make([]profileResponse, 0, len(ps))
	for _, p := range ps {
		resp = append(resp, profileResponse{UserProfile: p, Label: p.Label()})
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

// handleUser returns personalized recommendations for a sample user.
//
//	@Summary		Recommend for user
//	@Tags			recommend
//	@Produce		json
//	@Param			id		path	int	true	"User profile ID (1-5)"
//	@Param			count	query	int	false	"Number of products (1-8)"	default(4)
//	@Success		200	{object}	UserView
//	@Failure		400	{object}	server.Problem
//	@Failure		404	{object}	server.Problem
//	@Failure		502	{object}	server.Problem
//	@Router			/recommend/user/{id} [get]
func (m *Module) handleUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		server.BadRequest(w, "user id must be an integer", r.URL.Path)
		return
	}
	count, ok := countFromRequest(r)
	if !ok {
		server.BadRequest(w, "count must be an integer between 1 and 8", r.URL.Path)
		return
	}

	v, err := m.loader.LoadUser(r.Context(), id, count)
	switch {
	case errors.Is(err, ErrUnknownUser):
		server.NotFound(w, err.Error(), r.URL.Path)
		return
	case err != nil:
		m.logger.Error("failed to load user recommendations", zap.Int("user_id", id), zap.Error(err))
		server.BadGateway(w, loadFailedDetail, r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, v)
}

func (m *Module) handleCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := models.ParseCategory(r.PathValue("category"))
	if !ok {
		server.NotFound(w, "unknown category "+strconv.Quote(r.PathValue("category")), r.URL.Path)
		return
	}
	count, ok := countFromRequest(r)
	if !ok {
		server.BadRequest(w, "count must be an integer between 1 and 8", r.URL.Path)
		return
	}

	v, err := m.loader.LoadCategory(r.Context(), category, count)
	if err != nil {
		m.logger.Error("failed to load category recommendations",
			zap.String("category", string(category)), zap.Error(err))
		server.BadGateway(w, loadFailedDetail, r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, v)
}

// handleTrain retrains the recommender on the backend's sample data.
//
//	@Summary		Train recommender
//	@Tags			recommend
//	@Produce		json
//	@Success		200	{object}	models.TrainStatus
//	@Failure		502	{object}	server.Problem
//	@Router			/recommend/train [post]
func (m *Module) handleTrain(w http.ResponseWriter, r *http.Request) {
	status, err := m.src.TrainRecommender(r.Context())
	if err != nil {
		m.logger.Error("failed to train recommender", zap.Error(err))
		server.BadGateway(w, trainFailedDetail, r.URL.Path)
		return
	}
	m.logger.Info("recommender trained", zap.Bool("success", status.Success), zap.String("message", status.Message))
	server.WriteJSON(w, http.StatusOK, status)
}
