package storage

import (
	"time"

	"rts/internal/config"
	"rts/internal/domain"
)

// Storage persists and loads run results (e.g. for the report viewer).
type Storage interface {
	Save(results []domain.ProjectResult, mismatches []domain.Mismatch, duration time.Duration, workers int) error
	Load() (*domain.ResultsOutput, error)
	// SaveOutput writes the full output (e.g. after partial re-run updates).
	SaveOutput(output *domain.ResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
