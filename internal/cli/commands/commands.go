package commands

import (
	"rts/internal/cli"
	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/execution"
	"rts/internal/parser"
	"rts/internal/storage"
	"rts/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Report  *ReportCommand
	Clean   *CleanCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.DirsToIgnore)
	filter := discovery.NewFilter()
	sourceParser := discovery.NewParser()
	junitParser := parser.NewJUnitParser()
	compiler := execution.NewCompiler(cfg)
	runner := execution.NewRunner(cfg, compiler, sourceParser, junitParser)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	historyStore := storage.NewHistoryStore(cfg)
	formatter := ui.NewFormatter(cfg, sourceParser)
	reportViewer := ui.NewReportViewer(cfg, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, executor, junitParser, jsonStorage, historyStore, formatter, reportViewer),
		List:    NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Report:  NewReportCommand(cfg, jsonStorage, reportViewer),
		Clean:   NewCleanCommand(cfg, scanner),
		History: NewHistoryCommand(cfg, historyStore, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the v1→v2 experiment cycle for each project",
		Long:  "Discover experiment projects and, for each, compile and run the v1 sources under the selective-test-execution agent, overlay v2, run again, and compare the selected-test count against the expected file",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			cfg.KeepScratch = flags.KeepScratch
			cfg.LoadEnv()
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Workers, "processors", "p", 4, "Number of parallel workers to use")
	runCmd.Flags().StringVarP(&flags.ProjectsPath, "projects-path", "t", "", "Path to the folder where project discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter projects by name pattern (supports wildcards, e.g., 'unitAnnotation*' or '*Enum*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first mismatch or error")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only projects that mismatched in the last run (from storage/run-results.json)")
	runCmd.Flags().BoolVar(&flags.RerunFailures, "rerun-failures", false, "After running all projects, rerun only failed ones once and save that result")
	runCmd.Flags().BoolVar(&flags.KeepScratch, "keep-scratch", false, "Keep worker scratch directories after the run for inspection")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run summary in the MySQL history database")
	runCmd.Flags().BoolVar(&flags.OpenReport, "open-report", false, "Open the report viewer when the run finishes with mismatches")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered experiment projects",
		Long:  "Scan and list all experiment projects without running them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter projects by name pattern (supports wildcards, e.g., 'unitAnnotation*' or '*Enum*')")
	listCmd.Flags().StringVarP(&flags.ProjectsPath, "projects-path", "t", "", "Path to the folder where project discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestClasses, "test-classes", "c", false, "Also list the JUnit test classes found in each project's v1 sources")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "View mismatched projects interactively",
		Long:  "Display mismatches from the last run in an interactive viewer",
		RunE:  c.Report.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	reportCmd.Flags().StringVarP(&flags.ProjectsPath, "projects-path", "t", "", "Path to the folder holding the projects and results file")
	rootCmd.AddCommand(reportCmd)

	// Clean command
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove scratch directories and agent caches",
		Long:  "Delete worker scratch trees and per-project .ekstazi dependency caches so the next run starts cold",
		RunE:  c.Clean.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			return nil
		},
	}
	cleanCmd.Flags().IntVarP(&flags.Workers, "processors", "p", 4, "Number of worker scratch directories to remove")
	cleanCmd.Flags().StringVarP(&flags.ProjectsPath, "projects-path", "t", "", "Path to the folder where project discovery should start")
	rootCmd.AddCommand(cleanCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long:  "List run summaries recorded in the MySQL history database, newest first",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			cfg.LoadEnv()
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
