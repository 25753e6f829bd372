package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/server"
	"github.com/HerbHall/renewhub/internal/testutil"
	"github.com/HerbHall/renewhub/pkg/models"
)

func newTestMux(t *testing.T, src DetailSource, settings map[string]any) *http.ServeMux {
	t.Helper()
	m := NewModule(src, nil)
	v := viper.New()
	for k, val := range settings {
		v.Set(k, val)
	}
	require.NoError(t, m.Init(v, zap.NewNop()))

	mux := http.NewServeMux()
	for _, r := range m.Routes() {
		mux.HandleFunc(r.Method+" /api/v1/catalog"+r.Path, r.Handler)
	}
	return mux
}

func sampleSource() *stubDetailSource {
	return &stubDetailSource{countingLoader: countingLoader{products: testutil.SampleProducts()}}
}

func getJSON(t *testing.T, mux http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHandleListProducts(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantIDs   []int
		wantTab   Tab
		wantSync  bool
		wantPager bool
	}{
		{"first page", "/api/v1/catalog/products", []int{1, 2, 3, 4, 5, 6, 7, 8}, TabAll, true, true},
		{"second page", "/api/v1/catalog/products?page=2", []int{9, 10}, TabAll, true, true},
		{"solar tab", "/api/v1/catalog/products?category=solar", []int{1, 4, 6, 10}, Tab("solar"), true, false},
		{"search", "/api/v1/catalog/products?q=SOLAR", []int{1, 4, 6, 10}, TabAll, true, false},
		{"price", "/api/v1/catalog/products?max_price=200", []int{5, 7, 10}, TabAll, true, false},
		{"reversed price", "/api/v1/catalog/products?min_price=200&max_price=0", []int{5, 7, 10}, TabAll, true, false},
		{"checkboxes", "/api/v1/catalog/products?categories=hydro,biomass", []int{8, 9}, TabAll, false, false},
		{"tab plus checkbox", "/api/v1/catalog/products?category=solar&categories=wind", []int{1, 2, 4, 6, 10}, Tab("solar"), false, false},
		{"unknown tab ignored", "/api/v1/catalog/products?category=nuclear&page=2", []int{9, 10}, TabAll, true, true},
	}

	mux := newTestMux(t, sampleSource(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v BrowseView
			rec := getJSON(t, mux, tt.target, &v)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			assert.Equal(t, tt.wantIDs, testutil.ProductIDs(v.Items))
			assert.Equal(t, tt.wantTab, v.State.ActiveTab)
			assert.Equal(t, tt.wantSync, v.TabInSync)
			assert.Equal(t, tt.wantPager, v.ShowPager)
		})
	}
}

func TestHandleListProducts_BadQuery(t *testing.T) {
	mux := newTestMux(t, sampleSource(), nil)

	for _, target := range []string{
		"/api/v1/catalog/products?categories=solar,plasma",
		"/api/v1/catalog/products?min_price=abc",
		"/api/v1/catalog/products?max_price=-5",
		"/api/v1/catalog/products?max_price=NaN",
		"/api/v1/catalog/products?page=two",
	} {
		rec := getJSON(t, mux, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", target, rec.Code)
		}
	}
}

func TestHandleListProducts_LoadFailure(t *testing.T) {
	src := &stubDetailSource{countingLoader: countingLoader{err: errors.New("connection refused")}}
	mux := newTestMux(t, src, nil)

	rec := getJSON(t, mux, "/api/v1/catalog/products", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var p server.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, server.ProblemTypeBadGateway, p.Type)
}

func TestHandleListProducts_StorePerRequest(t *testing.T) {
	src := sampleSource()
	mux := newTestMux(t, src, nil)

	getJSON(t, mux, "/api/v1/catalog/products", nil)
	getJSON(t, mux, "/api/v1/catalog/products?page=2", nil)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestHandleListProducts_PageSizeSetting(t *testing.T) {
	mux := newTestMux(t, sampleSource(), map[string]any{"page_size": 4})

	var v BrowseView
	getJSON(t, mux, "/api/v1/catalog/products?page=3", &v)
	assert.Equal(t, []int{9, 10}, testutil.ProductIDs(v.Items))
	assert.Equal(t, 3, v.Pagination.TotalPages)
}

func TestInit_RejectsBadPageSize(t *testing.T) {
	v := viper.New()
	v.Set("page_size", 0)
	assert.Error(t, NewModule(sampleSource(), nil).Init(v, zap.NewNop()))
}

func TestHandleGetProduct(t *testing.T) {
	mux := newTestMux(t, sampleSource(), nil)

	var d Detail
	rec := getJSON(t, mux, "/api/v1/catalog/products/5", &d)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Smart Energy Monitor", d.Product.Name)
	assert.Equal(t, 99, d.EfficiencyPercent)

	assert.Equal(t, http.StatusNotFound, getJSON(t, mux, "/api/v1/catalog/products/77", nil).Code)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, mux, "/api/v1/catalog/products/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, mux, "/api/v1/catalog/products/0", nil).Code)
}

func TestHandleGetProduct_LoadFailure(t *testing.T) {
	src := &stubDetailSource{countingLoader: countingLoader{err: errors.New("timeout")}}
	mux := newTestMux(t, src, nil)

	assert.Equal(t, http.StatusBadGateway, getJSON(t, mux, "/api/v1/catalog/products/1", nil).Code)
}

func TestHandleListCategories(t *testing.T) {
	mux := newTestMux(t, sampleSource(), nil)

	var got []categoryResponse
	rec := getJSON(t, mux, "/api/v1/catalog/categories", &got)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, got, len(models.Categories()))
	assert.Equal(t, categoryResponse{
		Category: models.CategoryStorage,
		Label:    "Energy Storage",
		URL:      "/products?category=storage",
	}, got[2])
}
