package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seqcls/verdict/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	inferenceUC usecase.InferenceUsecase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(inferenceUC usecase.InferenceUsecase) *HealthHandler {
	return &HealthHandler{inferenceUC: inferenceUC}
}

// Health handles GET /health. A degraded service still answers 200; the
// status field says whether the model is usable.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	respondJSON(c, http.StatusOK, h.inferenceUC.Health(ctx))
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.inferenceUC.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
