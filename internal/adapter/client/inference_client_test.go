package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *InferenceClient {
	return NewInferenceClient(url, 5*time.Second, 5*time.Second)
}

func TestInferenceClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict/", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req TextRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, "Does aspirin reduce inflammation?", req.Text)

			resp := PredictResponse{
				InputText:        req.Text,
				PredictedClassID: 2,
				PredictedLabel:   "Yes",
				Probabilities:    []float64{0.1, 0.2, 0.7},
			}
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := newTestClient(server.URL + "/")
		result, err := client.Predict(context.Background(), "Does aspirin reduce inflammation?")

		require.NoError(t, err)
		assert.False(t, result.Failed())
		assert.Equal(t, 2, result.PredictedClassID)
		assert.Equal(t, "Yes", result.PredictedLabel)
		assert.Len(t, result.Probabilities, 3)
	})

	t.Run("error payload with 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error": "Model not loaded. Cannot predict.", "details": "dir missing"}`))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Predict(context.Background(), "hi")

		require.NoError(t, err)
		assert.True(t, result.Failed())
		assert.Equal(t, "dir missing", result.Details)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte("internal error"))
			require.NoError(t, err)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Predict(context.Background(), "test")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Equal(t, "internal error", statusErr.Body)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := newTestClient(url).Predict(context.Background(), "test")

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, KindConnectionRefused, transportErr.Kind)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		client := NewInferenceClient(server.URL, time.Second, 50*time.Millisecond)
		_, err := client.Predict(context.Background(), "test")

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, KindTimeout, transportErr.Kind)
	})
}

func TestInferenceClient_Health(t *testing.T) {
	t.Run("healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			assert.Equal(t, "GET", r.Method)

			resp := HealthResponse{
				Status:      "healthy",
				ModelStatus: "loaded",
				Device:      "cpu",
			}
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Health(context.Background())

		require.NoError(t, err)
		assert.True(t, result.Healthy())
		assert.Equal(t, "loaded", result.ModelStatus)
	})

	t.Run("degraded service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status": "unhealthy", "model_status": "not_loaded", "model_load_error": "missing"}`))
		}))
		defer server.Close()

		result, err := newTestClient(server.URL).Health(context.Background())

		require.NoError(t, err)
		assert.False(t, result.Healthy())
		require.NotNil(t, result.ModelLoadError)
		assert.Equal(t, "missing", *result.ModelLoadError)
	})
}

func TestInferenceClient_Root(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(RootResponse{Message: "running", Device: "cpu"})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Root(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "cpu", result.Device)
}

func TestNewInferenceClient_TrimsTrailingSlash(t *testing.T) {
	client := NewInferenceClient("http://localhost:8000/", time.Second, time.Second)
	assert.Equal(t, "http://localhost:8000", client.BaseURL())
}
