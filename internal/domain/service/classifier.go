package service

import "context"

// SequenceClassifier defines a loaded tokenizer+model pair
type SequenceClassifier interface {
	// Logits returns one raw score per output class, in class-index order
	Logits(ctx context.Context, text string) ([]float64, error)

	// Close releases the runtime resources held by the model
	Close() error
}
