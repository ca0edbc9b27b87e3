package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
)

type stubEndpoint struct {
	sent      []roster.Descriptor
	responses []*models.Envelope
}

func (s *stubEndpoint) Do(_ context.Context, d roster.Descriptor) (*models.Envelope, error) {
	s.sent = append(s.sent, d)
	if len(s.responses) == 0 {
		return nil, errors.New("no response queued")
	}
	env := s.responses[0]
	s.responses = s.responses[1:]
	return env, nil
}

func (s *stubEndpoint) reply(t *testing.T, code int, message string, data interface{}) {
	t.Helper()
	env := &models.Envelope{Code: code, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		env.Data = raw
	}
	s.responses = append(s.responses, env)
}

func (s *stubEndpoint) last() roster.Descriptor {
	return s.sent[len(s.sent)-1]
}

func page(current, size, total int) *models.PageResult {
	var records []models.Student
	for i := (current - 1) * size; i < total && i < current*size; i++ {
		records = append(records, models.Student{
			ID:        fmt.Sprintf("id-%02d", i),
			StudentNo: fmt.Sprintf("S%03d", i),
			Name:      fmt.Sprintf("Student %d", i),
			Gender:    models.GenderMale,
			Status:    models.StatusEnrolled,
		})
	}
	return models.NewPageResult(current, size, total, records)
}

// run executes cmd and every command it leads to, feeding the messages back into the
// model. Notice dismissals are dropped so notices stay observable.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil, noticeTimeoutMsg, tea.QuitMsg:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}
		next, more := m.Update(msg)
		m = next.(Model)
		queue = append(queue, more)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = run(t, next.(Model), cmd)
	}
	return m
}

func loaded(t *testing.T, endpoint *stubEndpoint, total int) Model {
	t.Helper()
	endpoint.reply(t, 200, "query succeeded", page(1, 10, total))
	m := New(context.Background(), roster.NewScreen(10), endpoint, Options{NoticeTTL: time.Millisecond})
	return run(t, m, m.Init())
}

func TestInitLoadsFirstPage(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	require.Len(t, endpoint.sent, 1)
	assert.Equal(t, roster.ActionQuery, endpoint.sent[0].Action)
	assert.Len(t, m.Screen().Table().Rows, 10)
	assert.Equal(t, "page 1 of 3, 25 records", m.Screen().Controls().Label)
	assert.Contains(t, m.View(), "page 1 of 3, 25 records")
	assert.Zero(t, m.inflight)
}

func TestPaginationKeys(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	m = press(t, m, "p")
	assert.Len(t, endpoint.sent, 1, "prev is disabled on page 1")

	endpoint.reply(t, 200, "ok", page(2, 10, 25))
	m = press(t, m, "n")
	assert.Equal(t, "2", endpoint.last().Values().Get("currentPage"))
	assert.Equal(t, 2, m.Screen().State().Page)

	endpoint.reply(t, 200, "ok", page(3, 10, 25))
	m = press(t, m, "G")
	assert.Equal(t, "3", endpoint.last().Values().Get("currentPage"))
	assert.True(t, m.Screen().Controls().Next.Disabled)
	assert.Len(t, m.Screen().Table().Rows, 5)
}

func TestSortAndPageSizeKeys(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	endpoint.reply(t, 200, "ok", page(1, 10, 25))
	m = press(t, m, "tab", "o")
	sent := endpoint.last().Values()
	assert.Equal(t, "student_no", sent.Get("orderBy"))
	assert.Equal(t, "ASC", sent.Get("orderType"))

	endpoint.reply(t, 200, "ok", page(1, 20, 25))
	m = press(t, m, "+")
	assert.Equal(t, "20", endpoint.last().Values().Get("pageSize"))
	assert.Equal(t, 20, m.Screen().State().PageSize)
}

func TestBatchDeleteWithoutSelectionWarns(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	m = press(t, m, "D")
	assert.Len(t, endpoint.sent, 1)
	assert.Equal(t, modeTable, m.mode)
	assert.Equal(t, roster.NoticeWarning, m.Screen().Notice().Level)
}

func TestBatchDeleteFlow(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	m = press(t, m, "x", "j", "j", "x", "D")
	assert.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "Delete the 2 selected students?")

	endpoint.reply(t, 200, "deleted 2 records", nil)
	endpoint.reply(t, 200, "ok", page(1, 10, 23))
	m = press(t, m, "y")

	require.Len(t, endpoint.sent, 3)
	assert.Equal(t, []string{"id-00", "id-02"}, endpoint.sent[1].IDs)
	assert.Equal(t, roster.ActionQuery, endpoint.sent[2].Action)
	assert.Equal(t, "deleted 2 records", m.Screen().Notice().Text)
	assert.Equal(t, "page 1 of 3, 23 records", m.Screen().Controls().Label)
}

func TestBatchDeleteFailureKeepsSelection(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)
	rows := m.Screen().Table()
	state := m.Screen().State()

	m = press(t, m, "x", "j", "j", "x", "D")
	endpoint.reply(t, 500, "db error", nil)
	m = press(t, m, "y")

	require.Len(t, endpoint.sent, 2)
	assert.Equal(t, modeTable, m.mode)
	assert.Equal(t, "db error", m.Screen().Notice().Text)
	assert.Equal(t, rows, m.Screen().Table())
	assert.Equal(t, state, m.Screen().State())
	assert.Equal(t, []string{"id-00", "id-02"}, m.Screen().Selection().Selected())

	next, cmd := m.Update(deleteDoneMsg{err: errors.New("connection refused")})
	m = run(t, next.(Model), cmd)

	require.Len(t, endpoint.sent, 2)
	assert.Equal(t, roster.NoticeError, m.Screen().Notice().Level)
	assert.Equal(t, rows, m.Screen().Table())
	assert.Equal(t, []string{"id-00", "id-02"}, m.Screen().Selection().Selected())
}

func TestDeclineDelete(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	m = press(t, m, "d", "n")
	assert.Equal(t, modeTable, m.mode)
	assert.Len(t, endpoint.sent, 1)
	assert.Nil(t, m.Screen().PendingConfirmation())
}

func TestAddFormValidation(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 0)

	m = press(t, m, "a", "tab", "Ann", "tab", "2", "enter")
	assert.Len(t, endpoint.sent, 1)
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "studentNo required", m.Screen().Notice().Text)
	assert.Equal(t, "Ann", m.form[1].Value())

	endpoint.reply(t, 200, "student added", nil)
	endpoint.reply(t, 200, "ok", page(1, 10, 1))
	m = press(t, m, "S001", "ctrl+s")

	require.Len(t, endpoint.sent, 3)
	add := endpoint.sent[1]
	assert.Equal(t, roster.ActionAdd, add.Action)
	assert.Equal(t, "S001", add.Form.StudentNo)
	assert.Equal(t, "Ann", add.Form.Name)
	assert.Equal(t, modeTable, m.mode)
	assert.False(t, m.Screen().Form().Open)
}

func TestEscapeClosesForm(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 0)

	m = press(t, m, "a", "esc")
	assert.Equal(t, modeTable, m.mode)
	assert.False(t, m.Screen().Form().Open)
}

func TestEditLoadsRecord(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 3)

	endpoint.reply(t, 200, "ok", models.Student{ID: "id-00", StudentNo: "S000", Name: "Student 0", Gender: models.GenderFemale, Status: models.StatusEnrolled})
	m = press(t, m, "e")
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "id-00", m.editingID)
	assert.Equal(t, "S000", m.form[0].Value())
	assert.Equal(t, "2", m.form[2].Value())

	endpoint.reply(t, 200, "student updated", nil)
	endpoint.reply(t, 200, "ok", page(1, 10, 3))
	m = press(t, m, "enter")
	update := endpoint.sent[2]
	assert.Equal(t, roster.ActionUpdate, update.Action)
	assert.Equal(t, "id-00", update.Values().Get("id"))
	assert.Equal(t, modeTable, m.mode)
}

func TestFilterSubmit(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)

	endpoint.reply(t, 200, "ok", page(1, 10, 1))
	m = press(t, m, "/", "tab", "Ann", "enter")

	sent := endpoint.last().Values()
	assert.Equal(t, "Ann", sent.Get("name"))
	assert.Equal(t, "1", sent.Get("currentPage"))
	assert.Equal(t, "Ann", m.Screen().Filters().Name)
	assert.Equal(t, modeTable, m.mode)
}

func TestQueryFailureKeepsTable(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)
	rows := m.Screen().Table()

	endpoint.reply(t, 500, "db error", nil)
	m = press(t, m, "n")
	assert.Equal(t, rows, m.Screen().Table())
	assert.Equal(t, 1, m.Screen().State().Page)
	assert.Equal(t, "db error", m.Screen().Notice().Text)
}

func TestNoticeTimeoutDismisses(t *testing.T) {
	endpoint := &stubEndpoint{}
	m := loaded(t, endpoint, 25)
	m = press(t, m, "D")
	n := m.Screen().Notice()
	require.True(t, n.Visible())

	next, _ := m.Update(noticeTimeoutMsg{id: n.ID})
	assert.False(t, next.(Model).Screen().Notice().Visible())
}
