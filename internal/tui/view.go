package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/sma-roster/internal/view"
)

var (
	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("7"))
	activeStyle = lipgloss.NewStyle().Width(14).Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View implements tea.Model.
func (m Model) View() string {
	snap := view.SnapshotOf(m.screen, m.title)
	snap.Notice.Text = ""

	var b strings.Builder
	b.WriteString(view.RenderTerminal(snap, view.TerminalOptions{Cursor: m.cursor, Selection: true}))
	b.WriteString("\n")

	columns := m.screen.Table().Columns
	if m.column < len(columns) {
		b.WriteString(hintStyle.Render(fmt.Sprintf("sort column: %s  page size: %d", columns[m.column].Title, m.screen.State().PageSize)))
	}
	if m.inflight > 0 {
		b.WriteString(hintStyle.Render("  loading..."))
	}
	b.WriteString("\n")

	if n := m.screen.Notice(); n.Visible() {
		b.WriteString(view.RenderNotice(n, false))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeFilter:
		b.WriteString(modalStyle.Render("Filter\n" + renderInputs(filterFields, m.filters, m.focus)))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	case modeForm:
		title := "Add student"
		if m.editingID != "" {
			title = "Edit student"
		}
		b.WriteString(modalStyle.Render(title + "\n" + renderInputs(formFields, m.form, m.focus)))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	case modeConfirm:
		if c := m.screen.PendingConfirmation(); c != nil {
			b.WriteString(modalStyle.Render(c.Prompt))
			b.WriteString("\n")
		}
		b.WriteString(m.help.ShortHelpView(m.keys.confirmHelp()))
	default:
		b.WriteString(m.help.ShortHelpView(m.keys.tableHelp()))
	}
	return b.String()
}

func renderInputs(fields []field, inputs []textinput.Model, focus int) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		style := labelStyle
		if i == focus {
			style = activeStyle
		}
		lines[i] = style.Render(f.label) + " " + inputs[i].View()
	}
	return strings.Join(lines, "\n")
}
