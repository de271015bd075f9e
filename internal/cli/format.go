package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/danieljhkim/rnbuf/internal/engine"
	"github.com/danieljhkim/rnbuf/internal/planner"
)

var (
	// fatih/color handles TTY detection and NO_COLOR itself
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	sourceColor  = color.New(color.FgHiBlack)
	moveColor    = color.New(color.FgBlue)
	renameColor  = color.New(color.FgMagenta)
	dimColor     = color.New(color.FgHiBlack)
)

// stdout receives all regular output. Commands point it at their own writer.
var stdout io.Writer = os.Stdout

// PrintActivity prints "<source> -> <destination>", coloured by kind.
func PrintActivity(a planner.Activity) {
	arrow := renameColor
	if a.Kind == planner.KindMove {
		arrow = moveColor
	}
	_, _ = sourceColor.Fprint(stdout, a.Source)
	_, _ = arrow.Fprint(stdout, " -> ")
	_, _ = fmt.Fprint(stdout, a.Destination)
	if a.Autonamed {
		_, _ = dimColor.Fprint(stdout, " (renamed automatically)")
	}
	_, _ = fmt.Fprintln(stdout)
}

// PrintSkipped prints a note that an activity was declined.
func PrintSkipped(a planner.Activity) {
	_, _ = dimColor.Fprintf(stdout, "  skipped %s\n", a.Source)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

// PrintCount formats a count with the right noun form.
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatError formats an error for display on stderr.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// consoleObserver reports engine progress on stdout.
type consoleObserver struct{}

func (consoleObserver) Proposed(a planner.Activity) {
	PrintActivity(a)
}

func (consoleObserver) Applied(a engine.AppliedActivity) {
	for _, dir := range a.CreatedDirectories {
		_, _ = dimColor.Fprintf(stdout, "  created %s\n", dir)
	}
}

func (consoleObserver) Skipped(a planner.Activity) {
	PrintSkipped(a)
}
