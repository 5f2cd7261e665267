package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rts/internal/domain"
)

// Save writes run results and mismatches to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.ProjectResult, mismatches []domain.Mismatch, duration time.Duration, workers int) error {
	output := domain.ResultsOutput{
		Meta:    buildMeta(results, duration, workers),
		Details: mismatches,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g. after
// re-running selected projects or resolving entries in the viewer).
func (s *JSONStorage) SaveOutput(output *domain.ResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func buildMeta(results []domain.ProjectResult, duration time.Duration, workers int) domain.ResultsMeta {
	var matchedCount, mismatchedCount, erroredCount int
	for _, r := range results {
		switch {
		case r.Err != nil:
			erroredCount++
		case r.Matched:
			matchedCount++
		default:
			mismatchedCount++
		}
	}

	return domain.ResultsMeta{
		TotalProjects:      len(results),
		MatchedProjects:    matchedCount,
		MismatchedProjects: mismatchedCount,
		ErroredProjects:    erroredCount,
		Duration:           duration.String(),
		DurationSeconds:    duration.Seconds(),
		Workers:            workers,
		Timestamp:          time.Now().Format(time.RFC3339),
	}
}
