package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"smig.dev/cli/internal/core/artefact"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	ignoredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderReport formats a scan report for the terminal
func renderReport(report *artefact.ScanReport, registry *artefact.Registry) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Scanned %d candidate types, accepted %d",
		report.Total, report.AcceptedCount())))
	b.WriteString("\n")

	for _, t := range registry.Types() {
		names := append([]string(nil), report.Accepted[t]...)
		sort.Strings(names)

		b.WriteString(fmt.Sprintf("\n%s (%d)\n", titleStyle.Render(t), len(names)))
		if len(names) == 0 {
			impl, _ := registry.DefaultImplementation(t)
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  none found, default implementation: %s", impl)))
			b.WriteString("\n")
			continue
		}
		for _, name := range names {
			b.WriteString(acceptedStyle.Render("  ✓ " + name))
			b.WriteString("\n")
		}
	}

	if len(report.Ignored) > 0 {
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", titleStyle.Render("Ignored"), len(report.Ignored)))
		for _, name := range report.Ignored {
			b.WriteString(ignoredStyle.Render("  · " + name))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// truncateString truncates a string to the specified display width
func truncateString(s string, maxLen int) string {
	return ansi.Truncate(s, maxLen, "...")
}
