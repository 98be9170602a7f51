package model

import (
	"context"
	"fmt"
	"math"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/seqcls/verdict/internal/domain/service"
	"github.com/seqcls/verdict/internal/infrastructure/config"
)

// pipelineClassifier runs a hugot text-classification pipeline
type pipelineClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// OpenHugot builds a text-classification pipeline from the tokenizer and
// ONNX model found in cfg.Dir.
func OpenHugot(cfg *config.ModelConfig) (service.SequenceClassifier, Device, error) {
	session, device, err := newSession(cfg)
	if err != nil {
		return nil, device, fmt.Errorf("failed to create inference session: %w", err)
	}

	// Multi-label output keeps every class score, in class-index order.
	pipelineConfig := hugot.TextClassificationConfig{
		ModelPath: cfg.Dir,
		Name:      cfg.Name,
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
			pipelines.WithMultiLabel(),
		},
	}

	pipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		_ = session.Destroy()
		return nil, device, fmt.Errorf("failed to build pipeline: %w", err)
	}

	return &pipelineClassifier{
		session:  session,
		pipeline: pipeline,
	}, device, nil
}

// Logits returns log-probabilities, which softmax maps back to the pipeline's distribution
func (c *pipelineClassifier) Logits(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) != 1 {
		return nil, fmt.Errorf("expected 1 classification output, got %d", len(output.ClassificationOutputs))
	}

	outputs := output.ClassificationOutputs[0]
	scores := make([]float32, len(outputs))
	for i, o := range outputs {
		scores[i] = o.Score
	}
	return logProbs(scores), nil
}

// Close destroys the underlying session
func (c *pipelineClassifier) Close() error {
	return c.session.Destroy()
}

// logProbs maps positional class scores to log-space. Zero scores are floored
// so every logit stays finite.
func logProbs(scores []float32) []float64 {
	logits := make([]float64, len(scores))
	for i, s := range scores {
		p := float64(s)
		if p < math.SmallestNonzeroFloat64 {
			p = math.SmallestNonzeroFloat64
		}
		logits[i] = math.Log(p)
	}
	return logits
}
