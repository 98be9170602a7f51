package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const tokenizerFile = "tokenizer.json"

type tokenizerConfig struct {
	Truncation *struct {
		MaxLength int `json:"max_length"`
	} `json:"truncation"`
}

// TokenizerTruncation reads the truncation length configured in the
// artifact's tokenizer.json. ok is false when truncation is disabled.
func TokenizerTruncation(dir string) (maxLength int, ok bool, err error) {
	raw, err := os.ReadFile(filepath.Join(dir, tokenizerFile))
	if err != nil {
		return 0, false, err
	}

	var tc tokenizerConfig
	if err := json.Unmarshal(raw, &tc); err != nil {
		return 0, false, fmt.Errorf("failed to parse %s: %w", tokenizerFile, err)
	}
	if tc.Truncation == nil || tc.Truncation.MaxLength <= 0 {
		return 0, false, nil
	}
	return tc.Truncation.MaxLength, true, nil
}

// checkTruncation returns a warning when the tokenizer would let inputs
// longer than limit tokens reach the model.
func checkTruncation(dir string, limit int) string {
	maxLength, ok, err := TokenizerTruncation(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("%s not found; inputs are not truncated to %d tokens", tokenizerFile, limit)
	case err != nil:
		return err.Error()
	case !ok:
		return fmt.Sprintf("%s has truncation disabled; inputs longer than %d tokens will fail", tokenizerFile, limit)
	case maxLength > limit:
		return fmt.Sprintf("%s truncates at %d tokens, above the configured %d", tokenizerFile, maxLength, limit)
	}
	return ""
}
