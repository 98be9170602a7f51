package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// TextRequest represents a request carrying text to the inference service
type TextRequest struct {
	Text string `json:"text"`
}

// PredictResponse represents the predict response. A 200 response may carry
// an error payload instead of a result; see Failed.
type PredictResponse struct {
	InputText        string    `json:"input_text,omitempty"`
	PredictedClassID int       `json:"predicted_class_id"`
	PredictedLabel   string    `json:"predicted_label,omitempty"`
	Probabilities    []float64 `json:"probabilities,omitempty"`

	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Failed reports whether the response is an error payload
func (r *PredictResponse) Failed() bool {
	return r.Error != ""
}

// HealthResponse represents the health check response
type HealthResponse struct {
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

// Healthy reports whether the model is loaded and usable
func (h *HealthResponse) Healthy() bool {
	return h.Status == "healthy"
}

// RootResponse represents the service banner
type RootResponse struct {
	Message string `json:"message"`
	Device  string `json:"device"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusError is returned when the service answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("inference service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("inference service returned status %d: %s", e.StatusCode, e.Body)
}

// Transport failure kinds
const (
	KindTimeout           = "timeout"
	KindConnectionRefused = "connection refused"
	KindTransport         = "transport"
)

// TransportError is returned when the service could not be reached
type TransportError struct {
	Kind string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InferenceClient is an HTTP client for the inference service
type InferenceClient struct {
	baseURL        string
	httpClient     *http.Client
	healthTimeout  time.Duration
	predictTimeout time.Duration
}

// NewInferenceClient creates a new inference service client
func NewInferenceClient(baseURL string, healthTimeout, predictTimeout time.Duration) *InferenceClient {
	return &InferenceClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		healthTimeout:  healthTimeout,
		predictTimeout: predictTimeout,
	}
}

// BaseURL returns the target the client talks to
func (c *InferenceClient) BaseURL() string {
	return c.baseURL
}

// Predict sends text for classification
func (c *InferenceClient) Predict(ctx context.Context, text string) (*PredictResponse, error) {
	var result PredictResponse
	if err := c.do(ctx, c.predictTimeout, http.MethodPost, "/predict/", TextRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks the inference service health
func (c *InferenceClient) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.do(ctx, c.healthTimeout, http.MethodGet, "/health", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Root fetches the service banner
func (c *InferenceClient) Root(ctx context.Context) (*RootResponse, error) {
	var result RootResponse
	if err := c.do(ctx, c.healthTimeout, http.MethodGet, "/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *InferenceClient) do(ctx context.Context, timeout time.Duration, method, path string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := io.Reader(http.NoBody)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func classifyTransportError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindConnectionRefused
	default:
		return KindTransport
	}
}
