package commands

import (
	"fmt"

	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/domain"
	"rts/internal/execution"
	"rts/internal/parser"
	"rts/internal/storage"
	"rts/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	parser    *parser.JUnitParser
	storage   storage.Storage
	history   *storage.HistoryStore
	formatter *ui.Formatter
	viewer    *ui.ReportViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	junitParser *parser.JUnitParser,
	st storage.Storage,
	history *storage.HistoryStore,
	formatter *ui.Formatter,
	viewer *ui.ReportViewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		parser:    junitParser,
		storage:   st,
		history:   history,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover projects
	projects, err := rc.scanner.Scan(rc.config.GetProjectsPath())
	if err != nil {
		return err
	}

	// Filter projects
	projects = rc.filter.FilterByName(projects, rc.config.Flags.NameFilter)

	if rc.config.Flags.OnlyFailed {
		projects, err = rc.onlyFailedProjects(projects)
		if err != nil {
			return err
		}
	}

	if len(projects) == 0 {
		color.Yellow("No projects to run")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(projects))
	rc.executor.SetProgress(progressBar)

	// Execute cycles
	results, duration, err := rc.executor.ExecuteWithOptions(projects, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	if rc.config.Flags.RerunFailures {
		results = rc.rerunFailures(results)
	}

	// Build mismatch details
	var mismatches []domain.Mismatch
	for _, result := range results {
		if result.Failed() {
			mismatches = append(mismatches, rc.buildMismatch(result))
		}
	}

	// Save results
	if err := rc.storage.Save(results, mismatches, duration, rc.config.Workers); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	if rc.config.Flags.Record {
		output, err := rc.storage.Load()
		if err != nil {
			return fmt.Errorf("failed to reload results for recording: %w", err)
		}
		if err := rc.history.Record(output.Meta); err != nil {
			return fmt.Errorf("failed to record run history: %w", err)
		}
	}

	// Print stats
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenReport && len(mismatches) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}
	return nil
}

// onlyFailedProjects keeps the projects that mismatched or errored in the
// last saved run.
func (rc *RunCommand) onlyFailedProjects(projects []domain.Project) ([]domain.Project, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous results to select failed projects from: %w", err)
	}

	failedNames := make(map[string]struct{}, len(output.Details))
	for _, mismatch := range output.Details {
		failedNames[mismatch.ProjectName] = struct{}{}
	}

	var failed []domain.Project
	for _, project := range projects {
		if _, ok := failedNames[project.Name]; ok {
			failed = append(failed, project)
		}
	}
	return failed, nil
}

// rerunFailures reruns failed cycles once in-line and keeps the better
// result. Useful when a mismatch was caused by a flaky fixture rather than
// the agent's selection.
func (rc *RunCommand) rerunFailures(results []domain.ProjectResult) []domain.ProjectResult {
	var failed []domain.Project
	for _, result := range results {
		if result.Failed() {
			failed = append(failed, result.Project)
		}
	}
	if len(failed) == 0 {
		return results
	}

	color.Yellow("\nRerunning %d failed project(s)...", len(failed))
	rerun, _, err := rc.executor.Execute(failed)
	if err != nil {
		color.Red("Rerun failed: %v", err)
		return results
	}

	rerunByName := make(map[string]domain.ProjectResult, len(rerun))
	for _, result := range rerun {
		rerunByName[result.Project.Name] = result
	}
	for i, result := range results {
		if updated, ok := rerunByName[result.Project.Name]; ok && !updated.Failed() {
			results[i] = updated
		}
	}
	return results
}

// buildMismatch converts a failed cycle into the persisted mismatch shape.
func (rc *RunCommand) buildMismatch(result domain.ProjectResult) domain.Mismatch {
	mismatch := domain.Mismatch{
		ProjectName: result.Project.Name,
		ProjectPath: result.Project.Path,
		Expected:    result.Expected,
		Selected:    result.Selected,
	}

	if result.Err != nil {
		mismatch.Stage = result.Stage
		mismatch.Message = result.Err.Error()
		mismatch.Output = stageOutput(result)
		return mismatch
	}

	mismatch.Message = fmt.Sprintf("expected %d selected test(s), agent ran %d", result.Expected, result.Selected)
	if failed := rc.parser.FailureCount(result.V2.Output); failed > 0 {
		mismatch.Message += fmt.Sprintf(" (%d of them failing)", failed)
	}
	mismatch.Output = result.V2.Output
	mismatch.Failures = rc.parser.ParseFailures(result.V2.Output)
	return mismatch
}

// stageOutput picks the captured output most relevant to the failing stage.
func stageOutput(result domain.ProjectResult) string {
	switch result.Stage {
	case domain.StageCompileV1:
		return result.V1.CompileOutput
	case domain.StageRunV1:
		return result.V1.Output
	case domain.StageCompileV2:
		return result.V2.CompileOutput
	case domain.StageRunV2, domain.StageParse:
		return result.V2.Output
	}
	return ""
}
