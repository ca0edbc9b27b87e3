// Package tui is the interactive terminal front end of the roster screen.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
)

// NoticeTTL is how long a notice stays on screen.
const NoticeTTL = 3 * time.Second

type mode int

const (
	modeTable mode = iota
	modeFilter
	modeForm
	modeConfirm
)

type (
	queryDoneMsg struct {
		pending roster.Pending
		env     *models.Envelope
		err     error
	}
	saveDoneMsg struct {
		env *models.Envelope
		err error
	}
	deleteDoneMsg struct {
		env *models.Envelope
		err error
	}
	editLoadedMsg struct {
		env *models.Envelope
		err error
	}
	noticeTimeoutMsg struct {
		id uint64
	}
)

// Options configure the terminal UI.
type Options struct {
	Title     string
	PageSizes []int
	NoticeTTL time.Duration
	Logger    *zap.Logger
}

// Model is the bubbletea model of the roster screen.
type Model struct {
	ctx      context.Context
	screen   *roster.Screen
	endpoint roster.Endpoint
	logger   *zap.Logger
	keys     keyMap
	help     help.Model

	title     string
	pageSizes []int
	noticeTTL time.Duration

	mode      mode
	cursor    int
	column    int
	inflight  int
	width     int
	filters   []textinput.Model
	form      []textinput.Model
	focus     int
	editingID string
}

// New builds the model. ctx bounds every request the UI sends.
func New(ctx context.Context, screen *roster.Screen, endpoint roster.Endpoint, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.NoticeTTL
	if ttl <= 0 {
		ttl = NoticeTTL
	}
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = []int{5, 10, 20, 50}
	}
	title := opts.Title
	if title == "" {
		title = "Student Roster"
	}
	return Model{
		ctx:       ctx,
		screen:    screen,
		endpoint:  endpoint,
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		title:     title,
		pageSizes: sizes,
		noticeTTL: ttl,
		filters:   newInputs(filterFields),
		form:      newInputs(formFields),
	}
}

// Screen exposes the underlying screen state.
func (m Model) Screen() *roster.Screen {
	return m.screen
}

// Init runs the initial query.
func (m Model) Init() tea.Cmd {
	return m.query(m.screen.Load())
}

func (m *Model) query(p roster.Pending) tea.Cmd {
	m.inflight++
	endpoint, ctx := m.endpoint, m.ctx
	return func() tea.Msg {
		env, err := endpoint.Do(ctx, p.Descriptor)
		return queryDoneMsg{pending: p, env: env, err: err}
	}
}

func (m *Model) send(d roster.Descriptor, wrap func(*models.Envelope, error) tea.Msg) tea.Cmd {
	m.inflight++
	endpoint, ctx := m.endpoint, m.ctx
	return func() tea.Msg {
		return wrap(endpoint.Do(ctx, d))
	}
}

// withNotice schedules the dismissal of a notice raised since before.
func (m Model) withNotice(before uint64, cmds ...tea.Cmd) tea.Cmd {
	n := m.screen.Notice()
	if n.ID != before && n.Visible() {
		id := n.ID
		cmds = append(cmds, tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
			return noticeTimeoutMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.screen.Notice().ID

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case noticeTimeoutMsg:
		m.screen.DismissNotice(msg.id)
		return m, nil

	case queryDoneMsg:
		m.settle()
		err := m.screen.FinishQuery(msg.pending, msg.env, msg.err)
		if err != nil && !errors.Is(err, roster.ErrSuperseded) {
			m.logger.Warn("query failed", zap.Error(err))
		}
		if err == nil {
			m.clampCursor()
		}
		return m, m.withNotice(before)

	case saveDoneMsg:
		m.settle()
		p, err := m.screen.FinishSave(msg.env, msg.err)
		if err != nil {
			m.logger.Warn("save failed", zap.Error(err))
			return m, m.withNotice(before)
		}
		m.mode = modeTable
		m.editingID = ""
		cmd := m.query(p)
		return m, m.withNotice(before, cmd)

	case deleteDoneMsg:
		m.settle()
		p, err := m.screen.FinishDelete(msg.env, msg.err)
		if err != nil {
			m.logger.Warn("delete failed", zap.Error(err))
			return m, m.withNotice(before)
		}
		cmd := m.query(p)
		return m, m.withNotice(before, cmd)

	case editLoadedMsg:
		m.settle()
		values, err := m.screen.FinishLoadForEdit(msg.env, msg.err)
		if err != nil {
			return m, m.withNotice(before)
		}
		setFormValues(m.form, values)
		m.editingID = values.ID
		m.openForm()
		return m, m.withNotice(before)

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeFilter:
			m, cmd = m.updateFilter(msg)
		case modeForm:
			m, cmd = m.updateForm(msg)
		case modeConfirm:
			m, cmd = m.updateConfirm(msg)
		default:
			m, cmd = m.updateTable(msg)
		}
		return m, m.withNotice(before, cmd)
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (Model, tea.Cmd) {
	ids := m.screen.Table().RowIDs()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(ids)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(ids) {
			m.screen.Selection().ToggleOne(ids[m.cursor])
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.screen.Selection().ToggleAll(m.screen.Selection().State() != roster.SelectChecked)
	case key.Matches(msg, m.keys.First):
		return m.goTo(roster.ControlFirst)
	case key.Matches(msg, m.keys.Prev):
		return m.goTo(roster.ControlPrev)
	case key.Matches(msg, m.keys.Next):
		return m.goTo(roster.ControlNext)
	case key.Matches(msg, m.keys.Last):
		return m.goTo(roster.ControlLast)
	case key.Matches(msg, m.keys.NextColumn):
		m.column = m.nextSortable(1)
	case key.Matches(msg, m.keys.PrevColumn):
		m.column = m.nextSortable(-1)
	case key.Matches(msg, m.keys.Sort):
		column := m.screen.Table().Columns[m.column]
		p, err := m.screen.SortBy(column.Sort)
		if err != nil {
			return m, nil
		}
		cmd := m.query(p)
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		setFilterValues(m.filters, m.screen.Filters())
		m.mode = modeFilter
		m.focus = 0
		focusInput(m.filters, 0)
	case key.Matches(msg, m.keys.Reset):
		for i := range m.filters {
			m.filters[i].SetValue("")
		}
		cmd := m.query(m.screen.Reset())
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.query(m.screen.Load())
		return m, cmd
	case key.Matches(msg, m.keys.Bigger):
		return m.resize(1)
	case key.Matches(msg, m.keys.Smaller):
		return m.resize(-1)
	case key.Matches(msg, m.keys.Add):
		m.screen.OpenAdd()
		setFormValues(m.form, roster.FormValues{})
		m.editingID = ""
		m.openForm()
	case key.Matches(msg, m.keys.Edit):
		if m.cursor >= len(ids) {
			return m, nil
		}
		d, err := m.screen.BeginLoadForEdit(ids[m.cursor])
		if err != nil {
			return m, nil
		}
		cmd := m.send(d, func(env *models.Envelope, err error) tea.Msg { return editLoadedMsg{env: env, err: err} })
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if m.cursor >= len(ids) {
			return m, nil
		}
		if _, err := m.screen.BeginDelete(ids[m.cursor]); err == nil {
			m.mode = modeConfirm
		}
	case key.Matches(msg, m.keys.DeleteBatch):
		if _, err := m.screen.BeginDeleteBatch(); err == nil {
			m.mode = modeConfirm
		}
	}
	return m, nil
}

func (m Model) goTo(kind roster.ControlKind) (Model, tea.Cmd) {
	p, err := m.screen.GoTo(kind)
	if err != nil {
		return m, nil
	}
	cmd := m.query(p)
	return m, cmd
}

func (m Model) resize(step int) (Model, tea.Cmd) {
	current := m.screen.State().PageSize
	idx := -1
	for i, size := range m.pageSizes {
		if size == current {
			idx = i
			break
		}
	}
	next := idx + step
	if idx < 0 {
		next = 0
	}
	if next < 0 || next >= len(m.pageSizes) || m.pageSizes[next] == current {
		return m, nil
	}
	p, err := m.screen.ChangePageSize(m.pageSizes[next])
	if err != nil {
		return m, nil
	}
	cmd := m.query(p)
	return m, cmd
}

func (m Model) nextSortable(step int) int {
	columns := m.screen.Table().Columns
	for i := 1; i <= len(columns); i++ {
		idx := ((m.column+step*i)%len(columns) + len(columns)) % len(columns)
		if columns[idx].Sortable() {
			return idx
		}
	}
	return m.column
}

func (m *Model) settle() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m *Model) clampCursor() {
	n := len(m.screen.Table().RowIDs())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) openForm() {
	m.mode = modeForm
	m.focus = 0
	focusInput(m.form, 0)
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.mode = modeTable
		focusInput(m.filters, -1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.mode = modeTable
		focusInput(m.filters, -1)
		m.cursor = 0
		cmd := m.query(m.screen.SubmitFilters(filterValues(m.filters)))
		return m, cmd
	case key.Matches(msg, m.keys.Field):
		m.focus = (m.focus + 1) % len(m.filters)
		focusInput(m.filters, m.focus)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.focus = (m.focus - 1 + len(m.filters)) % len(m.filters)
		focusInput(m.filters, m.focus)
		return m, nil
	}
	var cmd tea.Cmd
	m.filters[m.focus], cmd = m.filters[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.screen.CloseForm()
		m.mode = modeTable
		focusInput(m.form, -1)
		return m, nil
	case key.Matches(msg, m.keys.Save), key.Matches(msg, m.keys.Submit):
		formMode := roster.ModeAdd
		if m.editingID != "" {
			formMode = roster.ModeEdit
		}
		d, err := m.screen.BeginSave(formValues(m.form, m.editingID), formMode)
		if err != nil {
			var fieldErr *roster.FieldError
			if errors.As(err, &fieldErr) {
				if idx := fieldIndex(formFields, fieldErr.Field); idx >= 0 {
					m.focus = idx
					focusInput(m.form, idx)
				}
			}
			return m, nil
		}
		cmd := m.send(d, func(env *models.Envelope, err error) tea.Msg { return saveDoneMsg{env: env, err: err} })
		return m, cmd
	case key.Matches(msg, m.keys.Field):
		m.focus = (m.focus + 1) % len(m.form)
		focusInput(m.form, m.focus)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.focus = (m.focus - 1 + len(m.form)) % len(m.form)
		focusInput(m.form, m.focus)
		return m, nil
	}
	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeTable
		d, ok := m.screen.Confirm()
		if !ok {
			return m, nil
		}
		cmd := m.send(d, func(env *models.Envelope, err error) tea.Msg { return deleteDoneMsg{env: env, err: err} })
		return m, cmd
	case key.Matches(msg, m.keys.Decline):
		m.mode = modeTable
		m.screen.Cancel()
	}
	return m, nil
}
