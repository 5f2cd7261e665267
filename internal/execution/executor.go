package execution

import (
	"time"

	"rts/internal/domain"
)

// Executor runs experiment projects and returns results
type Executor interface {
	Execute(projects []domain.Project) ([]domain.ProjectResult, time.Duration, error)
}
