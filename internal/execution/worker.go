package execution

import (
	"context"
	"sync"
	"time"

	"rts/internal/config"
	"rts/internal/domain"
	"rts/internal/ui"
)

// ProjectRunner executes one project cycle on a worker
type ProjectRunner interface {
	Run(project domain.Project, workerID int) domain.ProjectResult
}

// WorkerPool runs project cycles in parallel, one scratch tree per worker
type WorkerPool struct {
	config    *config.Config
	runner    ProjectRunner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner ProjectRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all project cycles (no fail-fast).
func (wp *WorkerPool) Execute(projects []domain.Project) ([]domain.ProjectResult, time.Duration, error) {
	return wp.ExecuteWithOptions(projects, false)
}

// ExecuteWithOptions runs project cycles with optional fail-fast (stop
// scheduling after the first mismatch or error).
func (wp *WorkerPool) ExecuteWithOptions(projects []domain.Project, failFast bool) ([]domain.ProjectResult, time.Duration, error) {
	if len(projects) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(projects)
	}
	return wp.executeFailFast(projects)
}

// executeAll distributes projects deterministically and drains every worker.
func (wp *WorkerPool) executeAll(projects []domain.Project) ([]domain.ProjectResult, time.Duration, error) {
	workerCount := wp.workerCount()
	distribution := wp.scheduler.Schedule(projects, workerCount)
	results := make(chan domain.ProjectResult, len(projects))

	var mu sync.Mutex
	var completed, matched, failed int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, assigned := range distribution {
		if len(assigned) == 0 {
			continue
		}
		wg.Add(1)
		go func(workerID int, assigned []domain.Project) {
			defer wg.Done()
			for _, project := range assigned {
				result := wp.runner.Run(project, workerID)
				results <- result
				mu.Lock()
				completed++
				if result.Failed() {
					failed++
				} else {
					matched++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, matched, failed)
				}
				mu.Unlock()
			}
		}(i+1, assigned)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.ProjectResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// executeFailFast feeds projects through a queue and stops handing out work
// after the first failed cycle. In-flight cycles finish; their results are
// discarded past the failure.
func (wp *WorkerPool) executeFailFast(projects []domain.Project) ([]domain.ProjectResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan domain.Project, 1)
	results := make(chan domain.ProjectResult, len(projects))

	go func() {
		defer close(queue)
		for _, project := range projects {
			select {
			case <-ctx.Done():
				return
			case queue <- project:
			}
		}
	}()

	var mu sync.Mutex
	var completed, matched, failed int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.workerCount()

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for project := range queue {
				result := wp.runner.Run(project, workerID)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				if result.Failed() {
					failed++
				} else {
					matched++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, matched, failed)
				}
				if result.Failed() {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.ProjectResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) workerCount() int {
	if wp.config.Workers <= 0 {
		return 1
	}
	return wp.config.Workers
}
