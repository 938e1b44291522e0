package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"smig.dev/cli/internal/core/artefact"
)

// NewBrowseCommand creates the browse command
func NewBrowseCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dirs...]",
		Short: "Interactively browse the result of a scan",
		Long: `Browse scans the manifest directories and opens a terminal view of the
accepted and ignored types.

Controls: [↑↓/jk] Navigate | [a] Accepted only | [q] Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runScan(cmd.Context(), container, args)
			if err != nil {
				return err
			}

			program := tea.NewProgram(newBrowseModel(report, container.Registry), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browse failed: %w", err)
			}
			return nil
		},
	}
}

// browseRow is one type in the browse table
type browseRow struct {
	Name     string
	Category string
	Source   string
}

// browseModel holds the state for the Bubble Tea browser
type browseModel struct {
	rows         []browseRow
	total        int
	selectedRow  int
	acceptedOnly bool
	windowHeight int
}

func newBrowseModel(report *artefact.ScanReport, registry *artefact.Registry) browseModel {
	var rows []browseRow
	for _, t := range registry.Types() {
		for _, a := range registry.Artefacts(t) {
			row := browseRow{Name: a.Name, Category: a.Type}
			if d, ok := a.Descriptor.(*artefact.Descriptor); ok {
				row.Source = d.Source
			}
			rows = append(rows, row)
		}
	}
	for _, name := range report.Ignored {
		rows = append(rows, browseRow{Name: name, Category: "ignored"})
	}

	return browseModel{rows: rows, total: report.Total, windowHeight: 24}
}

// visibleRows applies the accepted-only filter
func (m browseModel) visibleRows() []browseRow {
	if !m.acceptedOnly {
		return m.rows
	}
	var rows []browseRow
	for _, r := range m.rows {
		if r.Category != "ignored" {
			rows = append(rows, r)
		}
	}
	return rows
}

// Init implements the Bubble Tea init method
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "a":
			m.acceptedOnly = !m.acceptedOnly
			m.selectedRow = 0
			return m, nil

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			return m, nil

		case "down", "j":
			if m.selectedRow < len(m.visibleRows())-1 {
				m.selectedRow++
			}
			return m, nil
		}
	}

	return m, nil
}

// View implements the Bubble Tea view method
func (m browseModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderTable(), m.renderFooter())
}

func (m browseModel) renderHeader() string {
	filter := "all"
	if m.acceptedOnly {
		filter = "accepted only"
	}
	return titleStyle.Render(fmt.Sprintf("smig browse | %d candidates | showing %s", m.total, filter))
}

func (m browseModel) renderTable() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return mutedStyle.Render("\n  No types to display.\n")
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("%-30s │ %-12s │ %s", "TYPE", "CATEGORY", "SOURCE"))}

	maxRows := m.windowHeight - 4
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if m.selectedRow >= maxRows {
		start = m.selectedRow - maxRows + 1
	}

	for i := start; i < len(rows) && i < start+maxRows; i++ {
		r := rows[i]
		style := acceptedStyle
		if r.Category == "ignored" {
			style = ignoredStyle
		}
		if i == m.selectedRow {
			style = style.Background(lipgloss.Color("240"))
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-30s │ %-12s │ %s",
			truncateString(r.Name, 30), r.Category, truncateString(r.Source, 40))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m browseModel) renderFooter() string {
	return mutedStyle.Render("Controls: [↑↓/jk] Navigate | [a] Accepted only | [q] Quit")
}
