package datasource

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/backend"
	"github.com/HerbHall/renewhub/internal/config"
	"github.com/HerbHall/renewhub/internal/testutil"
	"github.com/HerbHall/renewhub/pkg/models"
)

func newHTTPSource(t *testing.T) (*HTTP, *testutil.FakeBackend) {
	t.Helper()
	fake := testutil.NewFakeBackend(t)
	client, err := backend.New(fake.URL(), time.Second, backend.WithHTTPClient(fake.Client()))
	require.NoError(t, err)
	return NewHTTP(client), fake
}

func TestHTTP_Delegates(t *testing.T) {
	src, fake := newHTTPSource(t)
	ctx := context.Background()

	hs, err := src.CheckHealth(ctx)
	require.NoError(t, err)
	assert.True(t, hs.Healthy())

	products, err := src.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 10)

	similar, err := src.SimilarProducts(ctx, 1, 4)
	require.NoError(t, err)
	assert.Len(t, similar, 4)

	recs, err := src.CategoryRecommendations(ctx, models.CategorySolar, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	f, err := src.Forecast(ctx, 48)
	require.NoError(t, err)
	assert.Len(t, f.Points, 48)

	_, err = src.TrainForecast(ctx)
	require.NoError(t, err)

	st, err := src.TrainRecommender(ctx)
	require.NoError(t, err)
	assert.True(t, st.Success)

	for _, ep := range []string{"health", "products", "similar", "recommend_category", "forecast_predict", "forecast_train", "recommender_train"} {
		assert.Equal(t, 1, fake.Calls(ep), "calls to %s", ep)
	}
}

func TestHTTP_SpecsAreGeneric(t *testing.T) {
	src, fake := newHTTPSource(t)
	specs, err := src.ProductSpecs(context.Background(), testutil.NewProduct(testutil.WithEfficiency(0.22)))
	require.NoError(t, err)
	assert.Equal(t, "22%", specs[0].Value)
	assert.Zero(t, fake.Calls("products"))
}

func TestHTTP_UnhealthyBackend(t *testing.T) {
	src, fake := newHTTPSource(t)
	fake.SetHealth("degraded")

	_, err := src.CheckHealth(context.Background())
	assert.True(t, errors.Is(err, backend.ErrBackendUnhealthy))
}

func TestHTTP_PlotLinks(t *testing.T) {
	src, fake := newHTTPSource(t)

	var linker PlotLinker = src
	assert.Equal(t, fake.URL()+"/forecast/plot/components?periods=24", linker.ComponentsPlotURL(24))

	var sample Source = newSample(t)
	_, ok := sample.(PlotLinker)
	assert.False(t, ok, "sample source should not link plots")
}

func TestHTTP_StatusFailure(t *testing.T) {
	src, fake := newHTTPSource(t)
	fake.Fail("products", http.StatusInternalServerError)

	_, err := src.LoadCatalog(context.Background())
	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestNew(t *testing.T) {
	settings := config.Settings{DataSource: "sample"}
	src, err := New(settings, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "sample", src.Name())

	settings = config.Settings{
		DataSource: "http",
		Backend:    config.BackendSettings{URL: "http://backend:5000/api", Timeout: time.Second},
	}
	src, err = New(settings, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "http", src.Name())

	_, err = New(config.Settings{DataSource: "ftp"}, zap.NewNop(), nil)
	assert.Error(t, err)

	_, err = New(config.Settings{DataSource: "http", Backend: config.BackendSettings{URL: "nope"}}, zap.NewNop(), nil)
	assert.Error(t, err)
}
