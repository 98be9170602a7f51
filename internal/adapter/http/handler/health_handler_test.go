package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/seqcls/verdict/internal/usecase"
)

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unhealthy still answers 200", func(t *testing.T) {
		mockUC := new(MockInferenceUsecase)
		loadErr := "Model directory '/app/mounted_model' is empty or does not exist. Check volume mount."
		mockUC.On("Health").Return(&usecase.HealthOutput{
			Status:         usecase.StatusUnhealthy,
			ModelStatus:    usecase.ModelStatusNotLoaded,
			Device:         "cpu",
			ModelLoadError: &loadErr,
			ModelDir:       "/app/mounted_model",
			ModelDirEmpty:  true,
		})
		handler := NewHealthHandler(mockUC)

		router := gin.New()
		router.GET("/health", handler.Health)

		req, _ := http.NewRequest("GET", "/health", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var status usecase.HealthOutput
		err := json.Unmarshal(w.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, "not_loaded", status.ModelStatus)
		assert.Equal(t, loadErr, *status.ModelLoadError)
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ready when model loaded", func(t *testing.T) {
		mockUC := new(MockInferenceUsecase)
		mockUC.On("Ready").Return(nil)
		handler := NewHealthHandler(mockUC)

		router := gin.New()
		router.GET("/ready", handler.Ready)

		req, _ := http.NewRequest("GET", "/ready", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("not ready without model", func(t *testing.T) {
		mockUC := new(MockInferenceUsecase)
		mockUC.On("Ready").Return(errors.New("model not loaded: missing"))
		handler := NewHealthHandler(mockUC)

		router := gin.New()
		router.GET("/ready", handler.Ready)

		req, _ := http.NewRequest("GET", "/ready", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "not ready")
	})
}
