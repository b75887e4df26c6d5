// Package historyui renders the score history as an interactive table.
package historyui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B"))
)

// columnWidths matches stats.HistoryHeaders.
var columnWidths = []int{16, 5, 9, 9, 9, 5}

// headerLines is the header row plus its bottom border.
const headerLines = 2

// Model implements the Bubble Tea history viewer.
type Model struct {
	records []model.ScoreRecord
	table   table.Model
	width   int
	height  int
}

// NewModel constructs a history viewer for records, newest first.
func NewModel(records []model.ScoreRecord) *Model {
	m := &Model{records: records}
	m.table = buildTable(records, len(records)+headerLines)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(1, min(len(m.records)+headerLines, msg.Height-4)))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{titleStyle.Render("Recent scores"), ""}
	if len(m.records) == 0 {
		lines = append(lines, "No scores yet.")
	} else {
		lines = append(lines, m.table.View(), "", "Trend ["+stats.Trend(m.records)+"]")
	}
	lines = append(lines, "", helpStyle.Render("↑/↓ move · q quit"))
	return strings.Join(lines, "\n")
}

// Selected returns the highlighted record.
func (m *Model) Selected() (model.ScoreRecord, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return model.ScoreRecord{}, false
	}
	return m.records[idx], true
}

func buildTable(records []model.ScoreRecord, height int) table.Model {
	columns := make([]table.Column, 0, len(stats.HistoryHeaders))
	for i, title := range stats.HistoryHeaders {
		columns = append(columns, table.Column{Title: title, Width: columnWidths[i]})
	}
	var rows []table.Row
	for _, row := range stats.HistoryRows(records) {
		rows = append(rows, table.Row(row))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, height)),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	return styles
}
