package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("independent registries", func(t *testing.T) {
		assert.NotPanics(t, func() {
			New()
			New()
		})
	})

	t.Run("records predictions", func(t *testing.T) {
		m := New()

		m.ObservePrediction("Yes", 20*time.Millisecond)
		m.ObservePrediction("Yes", 30*time.Millisecond)
		m.ObservePredictionError("model_not_loaded")

		assert.Equal(t, float64(2), testutil.ToFloat64(m.predictions.WithLabelValues("Yes")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.predictErrors.WithLabelValues("model_not_loaded")))
	})

	t.Run("model loaded gauge", func(t *testing.T) {
		m := New()

		m.SetModelLoaded(true)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.modelLoaded))

		m.SetModelLoaded(false)
		assert.Equal(t, float64(0), testutil.ToFloat64(m.modelLoaded))
	})

	t.Run("handler exposes collectors", func(t *testing.T) {
		m := New()
		m.ObserveRequest(http.MethodPost, "/predict/", http.StatusOK, 10*time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `verdict_http_requests_total{method="POST",route="/predict/",status="200"} 1`)
	})
}
