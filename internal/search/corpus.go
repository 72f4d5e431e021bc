package search

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jayscottaf/pairscout/internal/model"
)

// LoadCorpus reads a pairing corpus from a JSON file: either a bare array
// of pairings or an object with a "pairings" key.
func LoadCorpus(path string) ([]model.Pairing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var pairings []model.Pairing
	if err := json.Unmarshal(data, &pairings); err == nil {
		return pairings, nil
	}

	var wrapped struct {
		Pairings []model.Pairing `json:"pairings"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	return wrapped.Pairings, nil
}
