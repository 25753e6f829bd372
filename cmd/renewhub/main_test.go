package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/config"
	"github.com/HerbHall/renewhub/internal/datasource"
	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/internal/version"
)

func defaultConfig(t *testing.T) (*config.Config, config.Settings) {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg := config.New(v)
	settings, err := cfg.Settings()
	require.NoError(t, err)
	return cfg, settings
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, version.Info(), strings.TrimSpace(out.String()))
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "browse", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestStartLocation(t *testing.T) {
	tests := []struct {
		category string
		want     string
		wantErr  bool
	}{
		{"", "/", false},
		{"all", "/products", false},
		{"solar", "/products?category=solar", false},
		{"nuclear", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := startLocation(tt.category)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	reg, err := buildRegistry(datasource.NewSample(), metrics.New(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, reg.InitAll(nil))

	routes := reg.AllRoutes()
	assert.Contains(t, routes, "catalog")
	assert.Contains(t, routes, "forecast")
	assert.Contains(t, routes, "recommend")
}

func TestBuildServer_ServesSampleData(t *testing.T) {
	cfg, settings := defaultConfig(t)
	srv, err := buildServer(cfg, settings, zap.NewNop())
	require.NoError(t, err)
	h := srv.Handler()

	tests := []struct {
		target string
		want   int
	}{
		{"/api/v1/health", http.StatusOK},
		{"/api/v1/modules", http.StatusOK},
		{"/api/v1/catalog/products?categories=solar", http.StatusOK},
		{"/api/v1/catalog/products/1", http.StatusOK},
		{"/api/v1/forecast/predict?periods=12", http.StatusOK},
		{"/api/v1/recommend/user/1", http.StatusOK},
		{"/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestBuildServer_DisabledModule(t *testing.T) {
	cfg, settings := defaultConfig(t)
	cfg.Viper().Set("modules.forecast.enabled", false)

	srv, err := buildServer(cfg, settings, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forecast/periods", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildServer_UnknownDataSource(t *testing.T) {
	cfg, settings := defaultConfig(t)
	settings.DataSource = "ftp"
	_, err := buildServer(cfg, settings, zap.NewNop())
	assert.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	nop, err := fileLogger("")
	require.NoError(t, err)
	assert.NotNil(t, nop)

	path := filepath.Join(t.TempDir(), "renewhub.log")
	logger, err := fileLogger(path)
	require.NoError(t, err)
	logger.Info("client started", zap.String("start", "/"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "client started", entry["msg"])
}
