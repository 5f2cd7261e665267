package commands

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rts/internal/config"
	"rts/internal/discovery"
)

// CleanCommand handles the clean command
type CleanCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
}

// NewCleanCommand creates a new CleanCommand
func NewCleanCommand(cfg *config.Config, scanner *discovery.Scanner) *CleanCommand {
	return &CleanCommand{
		config:  cfg,
		scanner: scanner,
	}
}

// Execute removes worker scratch trees and any .ekstazi caches left next to
// project sources by runs with --keep-scratch or by running the agent by hand.
func (cc *CleanCommand) Execute(cmd *cobra.Command, args []string) error {
	removed := 0

	for workerID := 1; workerID <= cc.config.Workers; workerID++ {
		dir := cc.config.GetScratchDir(workerID)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			color.Red("Failed to remove %s: %v", dir, err)
			continue
		}
		removed++
	}

	projects, err := cc.scanner.Scan(cc.config.GetProjectsPath())
	if err != nil {
		return err
	}
	for _, project := range projects {
		cache := filepath.Join(project.Path, ".ekstazi")
		if _, err := os.Stat(cache); err != nil {
			continue
		}
		if err := os.RemoveAll(cache); err != nil {
			color.Red("Failed to remove %s: %v", cache, err)
			continue
		}
		removed++
	}

	if removed == 0 {
		color.Yellow("Nothing to clean")
		return nil
	}
	color.Green("✓ Removed %d scratch/cache directorie(s)", removed)
	return nil
}
