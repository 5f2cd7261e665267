package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"rts/internal/config"
	"rts/internal/domain"
	"rts/internal/storage"
)

// ReportViewer displays mismatched projects in an interactive TUI
type ReportViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewReportViewer creates a new ReportViewer
func NewReportViewer(cfg *config.Config, st storage.Storage) *ReportViewer {
	return &ReportViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the last run's mismatches in an interactive TUI
func (rv *ReportViewer) View(results *domain.ResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No mismatches found!")
		return nil
	}

	// Track resolved entries (by index) - load from JSON
	resolved := make(map[int]bool)
	for i, mismatch := range results.Details {
		if mismatch.Resolved {
			resolved[i] = true
		}
	}

	// Function to save resolved status back to the JSON file
	saveResolvedStatus := func() error {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		return rv.storage.SaveOutput(results)
	}

	app := tview.NewApplication()

	// List of mismatched projects (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		mismatch := results.Details[index]
		name := mismatch.ProjectName
		if name == "" {
			name = fmt.Sprintf("Project %d", index+1)
		}

		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range results.Details {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Stats header (shows project path and count delta)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Mismatch details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for i := range results.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := countUnresolved()
		headerText := fmt.Sprintf(" Mismatched Projects (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(results.Details), unresolved)
		headerView.SetText(headerText)
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			mismatch := results.Details[index]
			statsView.SetText(rv.formatMismatchStats(mismatch, index+1))
			detailsView.SetText(rv.formatMismatchDetails(mismatch))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveResolvedStatus(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatMismatchDetails formats a mismatch for display using tview color tags
func (rv *ReportViewer) formatMismatchDetails(mismatch domain.Mismatch) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Project: %s[white]\n\n", mismatch.ProjectName)
	fmt.Fprintf(w, "[cyan]Path: %s[white]\n", mismatch.ProjectPath)

	if mismatch.Stage != "" {
		fmt.Fprintf(w, "[yellow]Failed stage: %s[white]\n\n", mismatch.Stage)
	} else {
		fmt.Fprintf(w, "[yellow]Expected: %d | Selected: %d[white]\n\n", mismatch.Expected, mismatch.Selected)
	}

	if mismatch.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", mismatch.Message)
	}

	if len(mismatch.Failures) > 0 {
		fmt.Fprintf(w, "[yellow]Failing cases:[white]\n")
		for _, c := range mismatch.Failures {
			fmt.Fprintf(w, "  [red]%s.%s[white]\n", c.ClassName, c.TestName)
			if c.Message != "" {
				fmt.Fprintf(w, "    %s\n", c.Message)
			}
			for i, trace := range c.StackTrace {
				if i < 10 {
					fmt.Fprintf(w, "    %s\n", trace)
				}
			}
			if len(c.StackTrace) > 10 {
				fmt.Fprintf(w, "    [gray]... and %d more lines[white]\n", len(c.StackTrace)-10)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if mismatch.Output != "" {
		fmt.Fprintf(w, "[yellow]Agent output (v2 run):[white]\n%s\n", mismatch.Output)
	}

	w.Flush()
	return builder.String()
}

// formatMismatchStats formats the stats header for a mismatch
func (rv *ReportViewer) formatMismatchStats(mismatch domain.Mismatch, number int) string {
	var builder strings.Builder

	path := mismatch.ProjectPath
	if path == "" {
		path = "Unknown path"
	}

	name := mismatch.ProjectName
	if name == "" {
		name = fmt.Sprintf("Project %d", number)
	}

	statsLine := fmt.Sprintf("[cyan]path:[white] [yellow]%s[white] [cyan]project:[white] [yellow]%s[white]", path, name)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}
