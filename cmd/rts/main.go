package main

import (
	"fmt"
	"os"

	"rts/internal/cli"
	"rts/internal/cli/commands"
	"rts/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "rts",
		Short:   "Selective-test-execution experiment harness",
		Long:    `A harness for observing selective regression test execution. For each experiment project it compiles and runs the v1 sources under the Ekstazi agent, overlays the v2 change, runs again, and checks how many tests the agent chose to re-execute against the project's expected count.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
