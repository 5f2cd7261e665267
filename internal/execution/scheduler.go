package execution

import "rts/internal/domain"

// Scheduler distributes projects across workers
type Scheduler interface {
	Schedule(projects []domain.Project, workerCount int) [][]domain.Project
}

// RoundRobinScheduler assigns projects to workers in discovery order. The
// assignment is deterministic so a given project always lands on the same
// worker (and scratch tree) for a given project set, which keeps reruns
// comparable.
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes projects evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(projects []domain.Project, workerCount int) [][]domain.Project {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]domain.Project, workerCount)
	for i := range distribution {
		distribution[i] = make([]domain.Project, 0)
	}

	for i, project := range projects {
		distribution[i%workerCount] = append(distribution[i%workerCount], project)
	}

	return distribution
}
