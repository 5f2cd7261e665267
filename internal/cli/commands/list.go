package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/storage"
	"rts/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	projects, err := lc.scanner.Scan(lc.config.GetProjectsPath())
	if err != nil {
		return err
	}

	// Filter projects
	projects = lc.filter.FilterByName(projects, lc.config.Flags.NameFilter)

	if len(projects) == 0 {
		color.Yellow("No projects found")
		return nil
	}

	// Mark projects that failed in the last run, when results exist
	failedNames := make(map[string]struct{})
	if output, err := lc.storage.Load(); err == nil {
		for _, mismatch := range output.Details {
			failedNames[mismatch.ProjectName] = struct{}{}
		}
	}

	return lc.formatter.PrintProjectList(projects, lc.config.Flags.TestClasses, failedNames)
}
