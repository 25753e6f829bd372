package catalog

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/internal/module"
	"github.com/HerbHall/renewhub/internal/server"
	"github.com/HerbHall/renewhub/pkg/models"
)

// Query parameters accepted by the products listing, besides CategoryParam.
const (
	CategoriesParam = "categories"
	SearchParam     = "q"
	MinPriceParam   = "min_price"
	MaxPriceParam   = "max_price"
	PageParam       = "page"
)

const loadFailedDetail = "Failed to load products. Please try again later."

// Compile-time interface check.
var _ module.Module = (*Module)(nil)

// Module serves catalog browsing under /api/v1/catalog.
type Module struct {
	source   DetailSource
	metrics  *metrics.Collector
	logger   *zap.Logger
	pageSize int
}

// NewModule creates the catalog module over src.
func NewModule(src DetailSource, m *metrics.Collector) *Module {
	return &Module{
		source:   src,
		metrics:  m,
		logger:   zap.NewNop(),
		pageSize: DefaultPageSize,
	}
}

func (m *Module) Name() string        { return "catalog" }
func (m *Module) Description() string { return "Product catalog browsing with filters and pagination" }

// Init reads the optional page_size setting.
func (m *Module) Init(config *viper.Viper, logger *zap.Logger) error {
	m.logger = logger
	if config.IsSet("page_size") {
		n := config.GetInt("page_size")
		if n <= 0 {
			return fmt.Errorf("catalog: page_size must be positive, got %d", n)
		}
		m.pageSize = n
	}
	return nil
}

func (m *Module) Routes() []module.Route {
	return []module.Route{
		{Method: http.MethodGet, Path: "/products", Handler: m.handleListProducts},
		{Method: http.MethodGet, Path: "/products/{id}", Handler: m.handleGetProduct},
		{Method: http.MethodGet, Path: "/categories", Handler: m.handleListCategories},
	}
}

// handleListProducts renders one page of the catalog for the state encoded
// in the query. Each request is its own visit with its own store.
//
//	@Summary		List products
//	@Description	Returns one page of the catalog filtered by category tab, category set, search term and price range.
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query	string	false	"Active category tab (all, solar, wind, storage, hydro, biomass, efficiency)"
//	@Param			categories	query	string	false	"Comma-separated category set"
//	@Param			q			query	string	false	"Search term"
//	@Param			min_price	query	number	false	"Lower price bound"	default(0)
//	@Param			max_price	query	number	false	"Upper price bound"	default(5000)
//	@Param			page		query	int		false	"Page number"		default(1)
//	@Success		200	{object}	BrowseView
//	@Failure		400	{object}	server.Problem
//	@Failure		502	{object}	server.Problem
//	@Router			/catalog/products [get]
func (m *Module) handleListProducts(w http.ResponseWriter, r *http.Request) {
	state, err := StateFromQuery(r.URL.Query())
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	store := NewStore(m.source, m.logger)
	products, err := store.Load(r.Context())
	m.metrics.RecordCatalogLoad(err)
	if err != nil {
		m.logger.Error("failed to load catalog", zap.Error(err))
		server.BadGateway(w, loadFailedDetail, r.URL.Path)
		return
	}

	server.WriteJSON(w, http.StatusOK, BuildView(state, products, m.pageSize))
}

// handleGetProduct returns the detail page of one product.
//
//	@Summary		Get product
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path	int	true	"Product ID"
//	@Success		200	{object}	Detail
//	@Failure		404	{object}	server.Problem
//	@Failure		502	{object}	server.Problem
//	@Router			/catalog/products/{id} [get]
func (m *Module) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		server.BadRequest(w, "product id must be a positive integer", r.URL.Path)
		return
	}

	store := NewStore(m.source, m.logger)
	detail, err := LoadDetail(r.Context(), m.source, store, id, m.logger)
	m.metrics.RecordCatalogLoad(store.Err())
	switch {
	case errors.Is(err, ErrProductNotFound):
		server.NotFound(w, fmt.Sprintf("product %d not found", id), r.URL.Path)
		return
	case err != nil:
		m.logger.Error("failed to load product detail", zap.Int("product_id", id), zap.Error(err))
		server.BadGateway(w, loadFailedDetail, r.URL.Path)
		return
	}

	server.WriteJSON(w, http.StatusOK, detail)
}

type categoryResponse struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	URL      string          `json:"url"`
}

func (m *Module) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := models.Categories()
	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryResponse{Category: c, Label: c.Label(), URL: CategoryURL(Tab(c))})
	}
	server.WriteJSON(w, http.StatusOK, resp)
}

// StateFromQuery mounts a visit from the query's category and replays the
// remaining parameters through the reducers. The page is applied last since
// every filter change resets it.
func StateFromQuery(q url.Values) (BrowseState, error) {
	state := Mount(q)

	if raw := q.Get(CategoriesParam); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			c, ok := models.ParseCategory(strings.TrimSpace(part))
			if !ok {
				return BrowseState{}, fmt.Errorf("unknown category %q", part)
			}
			state = state.ToggleCategoryCheckbox(c, true)
		}
	}

	if term := q.Get(SearchParam); term != "" {
		state = state.SetSearchTerm(term)
	}

	if q.Has(MinPriceParam) || q.Has(MaxPriceParam) {
		lo, err := priceParam(q, MinPriceParam, DefaultMinPrice)
		if err != nil {
			return BrowseState{}, err
		}
		hi, err := priceParam(q, MaxPriceParam, DefaultMaxPrice)
		if err != nil {
			return BrowseState{}, err
		}
		state = state.SetPriceRange(NewPriceRange(lo, hi))
	}

	if raw := q.Get(PageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return BrowseState{}, fmt.Errorf("page must be an integer, got %q", raw)
		}
		state = state.SetPage(n)
	}
	return state, nil
}

func priceParam(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", key, raw)
	}
	return v, nil
}
