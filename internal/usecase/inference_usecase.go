package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/domain/entity"
	"github.com/seqcls/verdict/internal/domain/service"
	"github.com/seqcls/verdict/internal/infrastructure/model"
)

// Error definitions for inference usecase
var (
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrInference      = errors.New("prediction failed")
)

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	ModelStatusLoaded    = "loaded"
	ModelStatusNotLoaded = "not_loaded"
)

// PredictError carries the payload returned to callers when a prediction fails
type PredictError struct {
	Kind    error
	Message string
	Details string
}

func (e *PredictError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *PredictError) Unwrap() error {
	return e.Kind
}

// TextInput represents a request carrying a text field. The field must be
// present but may be empty.
type TextInput struct {
	Text *string `json:"text" binding:"required"`
}

// RootOutput represents the service banner
type RootOutput struct {
	Message string `json:"message"`
	Device  string `json:"device"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthOutput represents the readiness report
type HealthOutput struct {
	Status             string  `json:"status"`
	ModelStatus        string  `json:"model_status"`
	Device             string  `json:"device"`
	ModelLoadError     *string `json:"model_load_error"`
	ModelWarning       string  `json:"model_warning,omitempty"`
	ModelOnAccelerator bool    `json:"model_on_accelerator"`
	ModelDir           string  `json:"model_dir"`
	ModelDirExists     bool    `json:"model_dir_exists"`
	ModelDirEmpty      bool    `json:"model_dir_empty"`
	Timestamp          string  `json:"timestamp"`
}

// EchoOutput represents the echo response
type EchoOutput struct {
	YouSent       string `json:"you_sent"`
	BackendEchoes string `json:"backend_echoes"`
}

// PredictionRecorder receives prediction outcomes
type PredictionRecorder interface {
	ObservePrediction(label string, elapsed time.Duration)
	ObservePredictionError(reason string)
}

// InferenceUsecase defines the interface for inference business logic
type InferenceUsecase interface {
	Root() *RootOutput
	Health(ctx context.Context) *HealthOutput
	Ready() error
	Predict(ctx context.Context, text string) (*entity.Prediction, error)
	Echo(text string) *EchoOutput
}

type inferenceUsecase struct {
	state    *model.State
	recorder PredictionRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewInferenceUsecase creates a new inference usecase. recorder may be nil.
func NewInferenceUsecase(state *model.State, recorder PredictionRecorder, logger *zap.Logger) InferenceUsecase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &inferenceUsecase{
		state:    state,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *inferenceUsecase) Root() *RootOutput {
	device := string(u.state.Device())
	if u.state.Loaded() {
		return &RootOutput{
			Message: fmt.Sprintf("Inference service running with model loaded on %s", device),
			Device:  device,
			Model:   u.state.Name(),
		}
	}
	return &RootOutput{
		Message: "Inference service running - model loading FAILED",
		Device:  device,
		Error:   u.state.LoadError(),
	}
}

func (u *inferenceUsecase) Health(_ context.Context) *HealthOutput {
	exists, empty := model.DirStatus(u.state.Dir())

	out := &HealthOutput{
		Status:             StatusUnhealthy,
		ModelStatus:        ModelStatusNotLoaded,
		Device:             string(u.state.Device()),
		ModelWarning:       u.state.Warning(),
		ModelOnAccelerator: u.state.OnAccelerator(),
		ModelDir:           u.state.Dir(),
		ModelDirExists:     exists,
		ModelDirEmpty:      empty,
		Timestamp:          u.now().UTC().Format(time.RFC3339),
	}
	if u.state.Loaded() {
		out.Status = StatusHealthy
		out.ModelStatus = ModelStatusLoaded
	}
	if loadErr := u.state.LoadError(); loadErr != "" {
		out.ModelLoadError = &loadErr
	}
	return out
}

func (u *inferenceUsecase) Ready() error {
	if !u.state.Loaded() {
		return fmt.Errorf("%w: %s", ErrModelNotLoaded, u.state.LoadError())
	}
	return nil
}

func (u *inferenceUsecase) Predict(ctx context.Context, text string) (*entity.Prediction, error) {
	classifier := u.state.Classifier()
	if classifier == nil {
		u.recorder.ObservePredictionError("model_not_loaded")
		return nil, &PredictError{
			Kind:    ErrModelNotLoaded,
			Message: "Model not loaded. Cannot predict.",
			Details: u.state.LoadError(),
		}
	}

	start := u.now()
	logits, err := safeLogits(ctx, classifier, text)
	if err != nil {
		return nil, u.inferenceFailed(err)
	}

	prediction, err := entity.NewPrediction(text, logits)
	if err != nil {
		return nil, u.inferenceFailed(err)
	}

	elapsed := u.now().Sub(start)
	u.recorder.ObservePrediction(prediction.PredictedLabel, elapsed)
	u.logger.Debug("Prediction completed",
		zap.Int("class_id", prediction.PredictedClassID),
		zap.String("label", prediction.PredictedLabel),
		zap.Duration("latency", elapsed),
	)

	return prediction, nil
}

// safeLogits turns a panic inside tokenization or inference into an error
func safeLogits(ctx context.Context, classifier service.SequenceClassifier, text string) (logits []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			logits = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return classifier.Logits(ctx, text)
}

func (u *inferenceUsecase) inferenceFailed(err error) error {
	u.recorder.ObservePredictionError("inference")
	u.logger.Error("Prediction failed", zap.Error(err))
	return &PredictError{
		Kind:    ErrInference,
		Message: "Prediction error",
		Details: err.Error(),
	}
}

func (u *inferenceUsecase) Echo(text string) *EchoOutput {
	return &EchoOutput{
		YouSent:       text,
		BackendEchoes: "Backend received: " + text,
	}
}

type noopRecorder struct{}

func (noopRecorder) ObservePrediction(string, time.Duration) {}
func (noopRecorder) ObservePredictionError(string)           {}
