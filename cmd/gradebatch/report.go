package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/gradebatch/pkg/batch"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	causeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// renderReport formats the run's outcomes, one line per assignment in
// input order, followed by a summary line.
func renderReport(outcomes []batch.Outcome) string {
	var b strings.Builder

	b.WriteString("\n")
	for _, o := range outcomes {
		if o.OK() {
			b.WriteString(fmt.Sprintf("  %s %s\n", okStyle.Render("✓"), o.Name))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", failStyle.Render("✗"), o.Name))
		b.WriteString(causeStyle.Render(fmt.Sprintf("      %s", o.Cause())))
		b.WriteString("\n")
	}

	failed := countFailed(outcomes)
	summary := fmt.Sprintf("%d created, %d failed", len(outcomes)-failed, failed)
	if failed == 0 {
		summary = okStyle.Render(summary)
	} else {
		summary = failStyle.Render(summary)
	}
	b.WriteString("\n" + summaryStyle.Render("Result: ") + summary + "\n")

	return b.String()
}
