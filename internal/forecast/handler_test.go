package forecast

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
)

func newTestMux(t *testing.T, src Source, v *viper.Viper) *http.ServeMux {
	t.Helper()
	if v == nil {
		v = viper.New()
	}
	m := NewModule(src)
	require.NoError(t, m.Init(v, zap.NewNop()))

	mux := http.NewServeMux()
	for _, r := range m.Routes() {
		mux.HandleFunc(r.Method+" /api/v1/forecast"+r.Path, r.Handler)
	}
	return mux
}

func TestHandlePredict(t *testing.T) {
	src := &stubSource{points: threePoints()}
	mux := newTestMux(t, src, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forecast/predict", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var v View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	assert.Equal(t, DefaultPeriods, v.Periods)
	assert.Len(t, v.Chart.YHat, 3)
	assert.Equal(t, 130.0, v.Summary.Peak)
}

func TestHandlePredict_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    *stubSource
		target string
		want   int
	}{
		{"bad periods", &stubSource{}, "/api/v1/forecast/predict?periods=5", http.StatusBadRequest},
		{"non-numeric periods", &stubSource{}, "/api/v1/forecast/predict?periods=day", http.StatusBadRequest},
		{"backend failure", &stubSource{forecastErr: errors.New("down")}, "/api/v1/forecast/predict?periods=12", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestMux(t, tt.src, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleTrain(t *testing.T) {
	src := &stubSource{points: threePoints()}
	mux := newTestMux(t, src, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/forecast/train?periods=72", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp trainResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Status.Success)
	assert.Equal(t, 72, resp.View.Periods)
}

func TestHandleTrain_Failure(t *testing.T) {
	mux := newTestMux(t, &stubSource{trainErr: errors.New("nope")}, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/forecast/train", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandlePeriods_DefaultSetting(t *testing.T) {
	v := viper.New()
	v.Set("default_periods", 48)
	mux := newTestMux(t, &stubSource{}, v)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forecast/periods", nil))

	var got []periodResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 5)
	assert.True(t, got[2].Default)
	assert.False(t, got[1].Default)
	assert.Equal(t, "1 Week", got[4].Label)
}

func TestInit_RejectsBadDefault(t *testing.T) {
	v := viper.New()
	v.Set("default_periods", 10)
	assert.Error(t, NewModule(&stubSource{}).Init(v, zap.NewNop()))
}
