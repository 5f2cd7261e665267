package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
	}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Experiment Run Statistics                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Projects")
	color.White("%-27d │\n", meta.TotalProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Matched Projects")
	color.Green("%-27d │\n", meta.MatchedProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Mismatched Projects")
	color.Red("%-27d │\n", meta.MismatchedProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Errored Projects")
	color.Red("%-27d │\n", meta.ErroredProjects)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	failedProjects := meta.MismatchedProjects + meta.ErroredProjects
	if failedProjects == 0 {
		color.Green("✓ All projects matched their expected counts!")
	} else {
		color.Red("✗ %d project(s) did not behave as expected", failedProjects)
		fmt.Println()
		f.printMismatchList(output.Details)
	}

	return nil
}

// printMismatchList prints each mismatched project with its count delta and
// any parsed test-case failures nested underneath.
func (f *Formatter) printMismatchList(mismatches []domain.Mismatch) {
	for i, m := range mismatches {
		isLast := i == len(mismatches)-1
		connector := "├──"
		childPrefix := "│   "
		if isLast {
			connector = "└──"
			childPrefix = "    "
		}

		if m.Stage != "" {
			color.Cyan("%s %s", connector, m.ProjectName)
			color.Red("%s└── error at %s: %s", childPrefix, m.Stage, m.Message)
			continue
		}

		color.Cyan("%s %s", connector, m.ProjectName)
		color.Yellow("%s├── expected %d, agent selected %d", childPrefix, m.Expected, m.Selected)
		if len(m.Failures) == 0 {
			color.Red("%s└── %s", childPrefix, m.Message)
			continue
		}
		fmt.Printf("%s└── failing cases:\n", childPrefix)
		for j, c := range m.Failures {
			caseConnector := "├──"
			if j == len(m.Failures)-1 {
				caseConnector = "└──"
			}
			color.Red("%s    %s %s.%s", childPrefix, caseConnector, c.ClassName, c.TestName)
		}
	}
}

// PrintProjectList prints discovered projects, optionally with the JUnit
// test classes found in each project's v1 sources. failedNames is optional;
// projects in this set are marked with [F] in red (from the last run).
func (f *Formatter) PrintProjectList(projects []domain.Project, showTestClasses bool, failedNames map[string]struct{}) error {
	color.Green("Found %d project(s):\n", len(projects))

	for i, project := range projects {
		relPath := project.Name
		if rel, err := filepath.Rel(f.config.GetProjectsPath(), project.Path); err == nil {
			relPath = rel
		}

		failMarker := ""
		if len(failedNames) > 0 {
			if _, ok := failedNames[project.Name]; ok {
				failMarker = " " + color.RedString("[F]")
			}
		}

		isLast := i == len(projects)-1
		if isLast {
			color.Cyan("└── %s%s", relPath, failMarker)
		} else {
			color.Cyan("├── %s%s", relPath, failMarker)
		}

		if !showTestClasses {
			continue
		}

		classes, err := f.parser.FindTestClasses(project.V1Path)
		if err != nil {
			color.Red("Error reading project %s: %v", project.Name, err)
			continue
		}

		childPrefix := "│   "
		if isLast {
			childPrefix = "    "
		}
		if len(classes) == 0 {
			fmt.Printf("%s└── %s\n", childPrefix, color.RedString("(no test classes found)"))
			continue
		}
		for j, class := range classes {
			if j == len(classes)-1 {
				fmt.Printf("%s└── %s\n", childPrefix, color.YellowString(class.Name))
			} else {
				fmt.Printf("%s├── %s\n", childPrefix, color.YellowString(class.Name))
			}
		}
		if !isLast {
			fmt.Println()
		}
	}

	return nil
}

// PrintHistory prints recorded run summaries, newest first.
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		color.Yellow("No recorded runs")
		return
	}

	color.Cyan("%-6s %-10s %-9s %-11s %-9s %-10s %-8s %s",
		"id", "projects", "matched", "mismatched", "errored", "duration", "workers", "ran at")
	for _, r := range records {
		line := fmt.Sprintf("%-6d %-10d %-9d %-11d %-9d %-10.2f %-8d %s",
			r.ID, r.TotalProjects, r.MatchedProjects, r.MismatchedProjects,
			r.ErroredProjects, r.DurationSeconds, r.Workers, r.Timestamp)
		if r.MismatchedProjects+r.ErroredProjects > 0 {
			color.Red("%s", line)
		} else {
			color.Green("%s", line)
		}
	}
}
