package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seqcls/verdict/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Messages and details come from the usecase's PredictError when present.
func MapUsecaseError(err error) ErrorResponse {
	resp := ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
	}

	switch {
	case errors.Is(err, usecase.ErrModelNotLoaded):
		resp.StatusCode = http.StatusServiceUnavailable
		resp.Code = "MODEL_NOT_LOADED"
		resp.Message = "Model not loaded. Cannot predict."
	case errors.Is(err, usecase.ErrInference):
		resp.StatusCode = http.StatusInternalServerError
		resp.Code = "INFERENCE_ERROR"
		resp.Message = "Prediction error"
	}

	var perr *usecase.PredictError
	if errors.As(err, &perr) {
		resp.Message = perr.Message
		resp.Details = perr.Details
	}

	return resp
}

// HandlePredictError sends the error payload for a failed prediction.
// Unless strict is set the status is 200 and callers inspect the body.
func HandlePredictError(c *gin.Context, err error, strict bool) {
	errResp := MapUsecaseError(err)
	status := http.StatusOK
	if strict {
		status = errResp.StatusCode
	}
	respondError(c, status, errResp.Code, errResp.Message, errResp.Details)
}

// HandleInvalidRequest handles a request body that failed validation.
func HandleInvalidRequest(c *gin.Context, details string) {
	respondError(c, http.StatusUnprocessableEntity, "INVALID_REQUEST", "invalid request", details)
}
