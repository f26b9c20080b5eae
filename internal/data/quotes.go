package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"il-surface/internal/model"
)

// LoadQuoteJSON reads a quote snapshot written by SaveQuoteJSON.
func LoadQuoteJSON(path string) (*model.Quote, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var q model.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("failed to parse quote file: %w", err)
	}
	if !(q.Price > 0) {
		return nil, fmt.Errorf("quote file %s has no positive price", path)
	}
	return &q, nil
}

func SaveQuoteJSON(path string, q *model.Quote) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
