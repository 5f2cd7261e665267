package commands

import (
	"github.com/spf13/cobra"

	"rts/internal/config"
	"rts/internal/storage"
	"rts/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	history   *storage.HistoryStore
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, history *storage.HistoryStore, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		history:   history,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	records, err := hc.history.List(hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	hc.formatter.PrintHistory(records)
	return nil
}
