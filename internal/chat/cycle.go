package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/adapter/client"
	"github.com/seqcls/verdict/internal/domain/entity"
)

// Now is the clock used for status timestamps
var Now = time.Now

// Status is the client's view of the last backend health check
type Status struct {
	Checked   bool
	Healthy   bool
	Summary   string
	Device    string
	Model     string
	CheckedAt time.Time
}

// ErrorDetail is attached to turns answering an error payload
type ErrorDetail struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// HTTPErrorDetail is attached to turns answering a non-success status
type HTTPErrorDetail struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// CheckStatus asks the backend whether it can serve predictions
func CheckStatus(ctx context.Context, backend Backend) Status {
	status := Status{Checked: true, CheckedAt: Now()}

	health, err := backend.Health(ctx)
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			status.Summary = fmt.Sprintf("Backend might be down (Status %d).", statusErr.StatusCode)
		} else {
			status.Summary = "Backend connection failed."
		}
		return status
	}

	status.Device = health.Device
	if !health.Healthy() {
		status.Summary = "Backend is up but the model is not loaded."
		if health.ModelLoadError != nil {
			status.Summary += " " + *health.ModelLoadError
		}
		return status
	}

	status.Healthy = true
	status.Summary = fmt.Sprintf("Backend is responsive! (model on %s)", health.Device)
	return status
}

// Answer runs one response cycle for text and builds the assistant turn
func Answer(ctx context.Context, backend Backend, text string, logger *zap.Logger) (entity.Turn, Status) {
	status := CheckStatus(ctx, backend)
	if !status.Healthy {
		logger.Warn("Backend unavailable, not sending request", zap.String("status", status.Summary))
		return entity.NewAssistantTurn(NotRespondingMessage, nil), status
	}

	resp, err := backend.Predict(ctx, text)
	if err != nil {
		return failedTurn(err, logger), status
	}

	if resp.Failed() {
		logger.Warn("Backend returned error payload", zap.String("error", resp.Error))
		content := "The backend could not classify this text: " + resp.Error
		return entity.NewAssistantTurn(content, &ErrorDetail{Error: resp.Error, Details: resp.Details}), status
	}

	logger.Info("Prediction received",
		zap.String("label", resp.PredictedLabel),
		zap.Int("class_id", resp.PredictedClassID),
	)
	content := fmt.Sprintf("The model's analysis suggests: **%s**", resp.PredictedLabel)
	return entity.NewAssistantTurn(content, resp), status
}

func failedTurn(err error, logger *zap.Logger) entity.Turn {
	var (
		statusErr    *client.StatusError
		transportErr *client.TransportError
	)

	switch {
	case errors.As(err, &statusErr):
		logger.Error("Backend returned error status", zap.Int("status", statusErr.StatusCode))
		content := fmt.Sprintf("Error from backend (Status %d): %s", statusErr.StatusCode, statusErr.Body)
		return entity.NewAssistantTurn(content, &HTTPErrorDetail{StatusCode: statusErr.StatusCode, Body: statusErr.Body})
	case errors.As(err, &transportErr):
		logger.Error("Could not reach backend", zap.String("kind", transportErr.Kind), zap.Error(transportErr.Err))
		content := fmt.Sprintf("Could not reach backend prediction service (%s).", transportErr.Kind)
		return entity.NewAssistantTurn(content, err.Error())
	default:
		logger.Error("Unexpected backend response", zap.Error(err))
		return entity.NewAssistantTurn("Unexpected response from backend.", err.Error())
	}
}
