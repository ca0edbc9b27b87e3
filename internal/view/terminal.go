package view

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/noah-isme/sma-roster/internal/roster"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const maxCellWidth = 24

// TerminalOptions tune RenderTerminal.
type TerminalOptions struct {
	// Cursor is the highlighted row, or -1 for none.
	Cursor int
	// Selection adds the checkbox column.
	Selection bool
	// Plain disables styling, for output that is not a terminal.
	Plain bool
}

// Sanitize removes control characters, including the escape character, so that
// record values cannot drive the terminal.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// RenderTerminal draws the snapshot as a text table followed by the pagination label.
func RenderTerminal(s Snapshot, opts TerminalOptions) string {
	style := func(st lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return st.Render(text)
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(style(titleStyle, Sanitize(s.Title)))
		b.WriteString("\n")
	}

	headers := make([]string, len(s.Table.Columns))
	for i, c := range s.Table.Columns {
		headers[i] = c.Title + s.SortMarker(c)
	}
	widths := columnWidths(headers, s.Table.Rows)

	var hdr strings.Builder
	if opts.Selection {
		mark := "[ ]"
		if s.AllState == roster.SelectChecked {
			mark = "[x]"
		}
		hdr.WriteString(mark + " ")
	}
	for i, h := range headers {
		hdr.WriteString(" " + runewidth.FillRight(h, widths[i]) + " ")
	}
	b.WriteString(style(headerStyle, hdr.String()))
	b.WriteString("\n")

	if s.Table.Empty() {
		b.WriteString(style(dimStyle, " "+s.Table.Rows[0].Cells[0]))
		b.WriteString("\n")
	} else {
		for ri, row := range s.Table.Rows {
			var line strings.Builder
			if opts.Selection {
				mark := "[ ]"
				if s.Selected[row.ID] {
					mark = "[x]"
				}
				line.WriteString(mark + " ")
			}
			for ci, cell := range row.Cells {
				line.WriteString(" " + runewidth.FillRight(clip(cell, widths[ci]), widths[ci]) + " ")
			}
			if ri == opts.Cursor {
				b.WriteString(style(cursorStyle, line.String()))
			} else {
				b.WriteString(line.String())
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(style(statusStyle, s.Controls.Label))
	if s.Notice.Visible() {
		b.WriteString("\n")
		b.WriteString(RenderNotice(s.Notice, opts.Plain))
	}
	return b.String()
}

// RenderNotice styles a notice by level.
func RenderNotice(n roster.Notice, plain bool) string {
	text := Sanitize(n.Text)
	if plain {
		return fmt.Sprintf("%s: %s", n.Level, text)
	}
	switch n.Level {
	case roster.NoticeSuccess:
		return successStyle.Render(text)
	case roster.NoticeWarning:
		return warningStyle.Render(text)
	case roster.NoticeError:
		return errorStyle.Render(text)
	default:
		return statusStyle.Render(text)
	}
}

func columnWidths(headers []string, rows []roster.Row) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		if row.Placeholder {
			continue
		}
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			w := runewidth.StringWidth(Sanitize(cell))
			if w > maxCellWidth {
				w = maxCellWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func clip(cell string, width int) string {
	cell = Sanitize(cell)
	if runewidth.StringWidth(cell) <= width {
		return cell
	}
	return runewidth.Truncate(cell, width, "…")
}
