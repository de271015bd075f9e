package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danieljhkim/rnbuf/internal/engine"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

// FormatRunSummary renders the outcome of a batch. An error from the run is
// passed in so a partial batch is summarised before the error is reported.
func FormatRunSummary(result *engine.RunResult, runErr error) string {
	var b strings.Builder

	switch {
	case result.DryRun:
		b.WriteString(headerStyle.Render(fmt.Sprintf("Dry run: %s planned",
			PrintCount(len(result.Plan.Activities), "change", "changes"))) + "\n")
		return b.String()
	case result.Execution == nil:
		b.WriteString(headerStyle.Render("No changes") + "\n")
		return b.String()
	}

	x := result.Execution
	var dirs []string
	for _, a := range x.Applied {
		dirs = append(dirs, a.CreatedDirectories...)
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s of %d listed",
		PrintCount(len(x.Applied), "file renamed", "files renamed"), result.Listed)) + "\n")

	renderCount := func(style lipgloss.Style, label string, n int) {
		if n == 0 {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %d\n", style.Render(label), n))
	}
	renderCount(skippedStyle, "Skipped:", len(x.Skipped))
	renderCount(createdStyle, "Directories created:", len(dirs))
	if runErr != nil {
		remaining := len(result.Plan.Activities) - len(x.Applied) - len(x.Skipped)
		renderCount(failedStyle, "Not applied:", remaining)
	}
	if len(x.StrayDirectories) > 0 {
		b.WriteString(failedStyle.Render("Left behind:") + "\n")
		for _, dir := range x.StrayDirectories {
			b.WriteString(fmt.Sprintf("  %s\n", dir))
		}
	}

	return b.String()
}

// FormatUndoSummary renders the outcome of an undo.
func FormatUndoSummary(result *engine.UndoResult) string {
	var b strings.Builder
	if result.Declined {
		b.WriteString(headerStyle.Render("Undo cancelled") + "\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("Undid %s",
		PrintCount(len(result.Reverted), "rename", "renames"))) + "\n")
	if n := len(result.RemovedDirectories); n > 0 {
		b.WriteString(fmt.Sprintf("  %s %d\n", createdStyle.Render("Directories removed:"), n))
	}
	return b.String()
}
