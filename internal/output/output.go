// Package output renders CLI messages.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsmostafa/reduceindex/internal/reduce"
)

var (
	// dimStyle for muted labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// pathStyle for file names
	pathStyle = lipgloss.NewStyle().
			Bold(true)
)

// FormatDone writes the one line confirmation for a processed file.
func FormatDone(w io.Writer, path string, changed bool) {
	status := "unchanged"
	if changed {
		status = "reduced"
	}
	fmt.Fprintf(w, "%s %s %s\n",
		successStyle.Render("✓"),
		pathStyle.Render(path),
		dimStyle.Render(status))
}

// FormatStats writes a summary of a reduction.
func FormatStats(w io.Writer, s reduce.Stats) {
	fmt.Fprintf(w, "%s %d  %s %d  %s %d  %s %d/%d  %s %d\n",
		dimStyle.Render("Sections:"), s.Sections,
		dimStyle.Render("Untitled:"), s.Untitled,
		dimStyle.Render("Index commands:"), s.IndexCommands,
		dimStyle.Render("Terms kept:"), s.TermsKept, s.TermsSeen,
		dimStyle.Render("Redundant:"), s.TermsRedundant,
	)
}

// FormatError writes a failure message.
func FormatError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("reduceindex:"), err)
}
