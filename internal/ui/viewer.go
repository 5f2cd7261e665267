package ui

import "rts/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.ResultsOutput) error
}
