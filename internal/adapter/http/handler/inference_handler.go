package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seqcls/verdict/internal/usecase"
)

// InferenceHandler handles prediction-related HTTP requests
type InferenceHandler struct {
	inferenceUC  usecase.InferenceUsecase
	strictErrors bool
}

// NewInferenceHandler creates a new inference handler
func NewInferenceHandler(inferenceUC usecase.InferenceUsecase, strictErrors bool) *InferenceHandler {
	return &InferenceHandler{
		inferenceUC:  inferenceUC,
		strictErrors: strictErrors,
	}
}

// Root handles GET /
func (h *InferenceHandler) Root(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.inferenceUC.Root())
}

// Predict handles POST /predict/
func (h *InferenceHandler) Predict(c *gin.Context) {
	text, ok := BindText(c)
	if !ok {
		return
	}

	prediction, err := h.inferenceUC.Predict(c.Request.Context(), text)
	if err != nil {
		HandlePredictError(c, err, h.strictErrors)
		return
	}

	respondJSON(c, http.StatusOK, prediction)
}

// Echo handles POST /echo/
func (h *InferenceHandler) Echo(c *gin.Context) {
	text, ok := BindText(c)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, h.inferenceUC.Echo(text))
}
