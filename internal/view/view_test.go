package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
)

func snapshot(records []models.Student) Snapshot {
	table := roster.Render(records)
	return Snapshot{
		Title:    "Students",
		State:    models.DefaultQueryState(10),
		Table:    table,
		Controls: roster.ComputeControls(1, 1, len(records)),
		Selected: map[string]bool{},
	}
}

func TestRenderHTMLEscapesRecordValues(t *testing.T) {
	s := snapshot([]models.Student{{ID: "1", StudentNo: "S1", Name: `<script>alert("x")</script>`, Gender: models.GenderMale, Status: models.StatusEnrolled}})
	s.Selected["1"] = true

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, s))
	out := buf.String()

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `data-id="1"`)
	assert.Contains(t, out, `value="1" checked`)
	assert.Contains(t, out, "page 1 of 1, 1 records")
	assert.Contains(t, out, "ID▼")
}

func TestRenderHTMLEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, snapshot(nil)))
	out := buf.String()

	assert.Contains(t, out, `<td colspan="13" class="empty">no data</td>`)
	assert.Equal(t, 1, strings.Count(out, "<tr><td colspan"))
}

func TestSanitizeStripsControlCharacters(t *testing.T) {
	assert.Equal(t, "[31mred", Sanitize("\x1b[31mred"))
	assert.Equal(t, "a b", Sanitize("a\tb"))
	assert.Equal(t, "名字", Sanitize("名字"))
}

func TestRenderTerminalPlain(t *testing.T) {
	age := 21
	s := snapshot([]models.Student{
		{ID: "1", StudentNo: "S1", Name: "Ann\x1b[2J", Gender: models.GenderFemale, Age: &age, Status: models.StatusEnrolled},
		{ID: "2", StudentNo: "S2", Name: "Bob", Gender: models.GenderMale, Status: models.StatusGraduated},
	})
	s.State.SortField = models.SortByName
	s.State.SortDirection = models.SortAsc
	s.Selected["2"] = true

	out := RenderTerminal(s, TerminalOptions{Cursor: -1, Selection: true, Plain: true})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "Students", lines[0])
	assert.Contains(t, lines[1], "Name▲")
	assert.NotContains(t, out, "\x1b")
	assert.True(t, strings.HasPrefix(lines[2], "[ ]"))
	assert.True(t, strings.HasPrefix(lines[3], "[x]"))
	assert.Contains(t, lines[3], "graduated")
	assert.Equal(t, "page 1 of 1, 2 records", lines[4])
}

func TestRenderTerminalEmptyAndNotice(t *testing.T) {
	s := snapshot(nil)
	s.Notice = roster.Notice{ID: 1, Level: roster.NoticeError, Text: "db error"}

	out := RenderTerminal(s, TerminalOptions{Cursor: -1, Plain: true})
	assert.Contains(t, out, " no data\n")
	assert.True(t, strings.HasSuffix(out, "error: db error"))
}

func TestClipTruncatesWideCells(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}

func TestDatasetSkipsPlaceholder(t *testing.T) {
	empty := Dataset(snapshot(nil))
	assert.Empty(t, empty.Rows)
	assert.Len(t, empty.Headers, len(roster.Columns()))

	data := Dataset(snapshot([]models.Student{{ID: "1", StudentNo: "S1", Name: "Ann", Gender: models.GenderFemale}}))
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Ann", data.Rows[0]["Name"])
	assert.Equal(t, roster.Placeholder, data.Rows[0]["Age"])
	assert.Equal(t, "page 1 of 1, 1 records", data.Footer)
	assert.Equal(t, "Students", data.Title)
}
