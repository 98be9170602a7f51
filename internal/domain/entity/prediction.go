package entity

import (
	"errors"
	"fmt"
	"math"
)

// Logit validation errors
var (
	ErrEmptyLogits     = errors.New("model returned no logits")
	ErrNonFiniteLogits = errors.New("model returned non-finite logits")
)

// Labels is the fixed positional class-index to label table.
// It is never derived from model metadata.
var Labels = []string{"No", "Maybe", "Yes"}

// Prediction represents the outcome of classifying one text
type Prediction struct {
	InputText        string    `json:"input_text"`
	PredictedClassID int       `json:"predicted_class_id"`
	PredictedLabel   string    `json:"predicted_label"`
	Probabilities    []float64 `json:"probabilities"`
}

// NewPrediction turns raw logits into a Prediction
func NewPrediction(text string, logits []float64) (*Prediction, error) {
	if len(logits) == 0 {
		return nil, ErrEmptyLogits
	}
	for i, l := range logits {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("%w: class %d is %v", ErrNonFiniteLogits, i, l)
		}
	}

	probs := Softmax(logits)
	classID := Argmax(probs)

	return &Prediction{
		InputText:        text,
		PredictedClassID: classID,
		PredictedLabel:   LabelFor(classID),
		Probabilities:    probs,
	}, nil
}

// LabelFor maps a class index through the fixed label table
func LabelFor(classID int) string {
	if classID < 0 || classID >= len(Labels) {
		return fmt.Sprintf("UNKNOWN_ID_%d", classID)
	}
	return Labels[classID]
}

// Softmax converts logits into a probability distribution
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := math.Inf(-1)
	for _, l := range logits {
		if l > maxLogit {
			maxLogit = l
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Argmax returns the index of the first maximum value, or -1 for an empty slice
func Argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}
