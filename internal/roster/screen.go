package roster

import (
	"errors"
	"strings"

	"github.com/noah-isme/sma-roster/internal/models"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

// ErrSuperseded is returned for a query response that arrived after a newer query was
// dispatched. Its result is dropped.
var ErrSuperseded = errors.New("roster: response superseded by a newer query")

// ErrDisabled is returned when a disabled pagination control is activated.
var ErrDisabled = errors.New("roster: control is disabled")

// Pending is a query in flight. The candidate state and filters become the screen's
// only if the response succeeds.
type Pending struct {
	Seq        uint64
	State      models.QueryState
	Filters    models.FilterCriteria
	Descriptor Descriptor
}

// FormState is the edit form: whether it is shown, its mode and its values.
type FormState struct {
	Open   bool
	Mode   FormMode
	Values FormValues
}

// Screen is the state of one roster screen. It is not safe for concurrent use; every
// event and every response is applied from the same goroutine.
type Screen struct {
	state     models.QueryState
	filters   models.FilterCriteria
	page      models.PageResult
	table     TableView
	controls  Controls
	selection *SelectionTracker
	form      FormState
	notice    Notice
	saver     SaveCoordinator

	seq       uint64
	noticeSeq uint64
	pending   *Confirmation
}

// NewScreen returns a screen in its initial state: page 1, sorted by id descending, and
// an empty table until the first query lands.
func NewScreen(pageSize int) *Screen {
	state := models.DefaultQueryState(pageSize)
	s := &Screen{
		state:     state,
		selection: NewSelectionTracker(),
	}
	s.page = *models.NewPageResult(1, state.PageSize, 0, nil)
	s.table = Render(nil)
	s.controls = ComputeControls(1, 0, 0)
	return s
}

// State is the committed query state.
func (s *Screen) State() models.QueryState { return s.state }

// Filters are the filters of the last successful query.
func (s *Screen) Filters() models.FilterCriteria { return s.filters }

func (s *Screen) Page() models.PageResult { return s.page }

func (s *Screen) Table() TableView { return s.table }

func (s *Screen) Controls() Controls { return s.controls }

func (s *Screen) Selection() *SelectionTracker { return s.selection }

func (s *Screen) Form() FormState { return s.form }

func (s *Screen) Notice() Notice { return s.notice }

// PendingConfirmation is the destructive request awaiting an answer, if any.
func (s *Screen) PendingConfirmation() *Confirmation { return s.pending }

// DismissNotice hides the notice with the given id. Newer notices stay.
func (s *Screen) DismissNotice(id uint64) {
	if s.notice.ID == id {
		s.notice = Notice{ID: id}
	}
}

func (s *Screen) notify(level NoticeLevel, text string) Notice {
	s.noticeSeq++
	s.notice = Notice{ID: s.noticeSeq, Level: level, Text: text}
	return s.notice
}

func (s *Screen) query(state models.QueryState, filters models.FilterCriteria) Pending {
	s.seq++
	filters = filters.Normalize()
	return Pending{
		Seq:        s.seq,
		State:      state,
		Filters:    filters,
		Descriptor: Build(state, filters, ActionQuery),
	}
}

// Load queries the current state with the applied filters. It serves the initial load
// and refreshes.
func (s *Screen) Load() Pending {
	return s.query(s.state, s.filters)
}

// SubmitFilters queries page 1 with new filter values.
func (s *Screen) SubmitFilters(filters models.FilterCriteria) Pending {
	next := s.state
	next.Page = 1
	return s.query(next, filters)
}

// Reset clears the filters and returns to page 1 sorted by id descending. The page size
// is kept.
func (s *Screen) Reset() Pending {
	next := models.DefaultQueryState(s.state.PageSize)
	return s.query(next, models.FilterCriteria{})
}

// ChangePageSize queries page 1 with a new page size.
func (s *Screen) ChangePageSize(size int) (Pending, error) {
	if size <= 0 {
		return Pending{}, appErrors.Clone(appErrors.ErrValidation, "page size must be positive")
	}
	next := s.state
	next.PageSize = size
	next.Page = 1
	return s.query(next, s.filters), nil
}

// SortBy toggles the sort on column using the applied filters.
func (s *Screen) SortBy(column models.SortField) (Pending, error) {
	if _, ok := models.ParseSortField(string(column)); !ok {
		return Pending{}, appErrors.Clone(appErrors.ErrValidation, "column is not sortable")
	}
	return s.query(ToggleSort(s.state, column), s.filters), nil
}

// Seek queries an explicit state, as when restoring a saved position. The state must
// name a positive page and page size and a sortable column.
func (s *Screen) Seek(state models.QueryState, filters models.FilterCriteria) (Pending, error) {
	if state.Page < 1 || state.PageSize < 1 {
		return Pending{}, appErrors.Clone(appErrors.ErrValidation, "page and page size must be positive")
	}
	if _, ok := models.ParseSortField(string(state.SortField)); !ok {
		return Pending{}, appErrors.Clone(appErrors.ErrValidation, "column is not sortable")
	}
	if state.SortDirection != models.SortAsc {
		state.SortDirection = models.SortDesc
	}
	return s.query(state, filters), nil
}

// GoTo follows a pagination control with the applied filters.
func (s *Screen) GoTo(kind ControlKind) (Pending, error) {
	control := s.controls.Get(kind)
	if control.Disabled {
		return Pending{}, ErrDisabled
	}
	next := s.state
	next.Page = control.Target
	return s.query(next, s.filters), nil
}

// FinishQuery applies a query response. On success the candidate state is committed,
// the table and controls are re-rendered and the selection is cleared. On failure the
// screen keeps its previous state and shows a notice.
func (s *Screen) FinishQuery(p Pending, env *models.Envelope, err error) error {
	if p.Seq < s.seq {
		return ErrSuperseded
	}
	if err != nil {
		s.notify(NoticeError, transportQueryText)
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportQueryText)
	}
	if !env.Success() {
		s.notify(NoticeError, env.Message)
		return appErrors.Clone(appErrors.ErrApplication, env.Message)
	}

	var page models.PageResult
	if decodeErr := env.Decode(&page); decodeErr != nil {
		s.notify(NoticeError, transportQueryText)
		return appErrors.Wrap(decodeErr, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportQueryText)
	}

	s.state = p.State
	if page.CurrentPage > 0 {
		s.state.Page = page.CurrentPage
	}
	if page.PageSize <= 0 {
		page.PageSize = s.state.PageSize
	}
	s.filters = p.Filters
	s.page = page
	s.table = Render(page.Records)
	s.controls = ComputeControls(s.state.Page, page.TotalPages, page.TotalCount)
	s.selection.Reset(s.table.RowIDs())
	return nil
}

// OpenAdd shows an empty form in add mode.
func (s *Screen) OpenAdd() {
	s.form = FormState{Open: true, Mode: ModeAdd}
}

// CloseForm hides the form and drops its values.
func (s *Screen) CloseForm() {
	s.form = FormState{}
}

// BeginSave validates the form values and returns the descriptor to send. On a local
// validation failure nothing is sent, a warning is shown and the form stays open with
// the entered values.
func (s *Screen) BeginSave(values FormValues, mode FormMode) (Descriptor, error) {
	s.form = FormState{Open: true, Mode: mode, Values: values}
	d, err := s.saver.PrepareSave(values, mode)
	if err != nil {
		s.notify(NoticeWarning, err.Error())
		return Descriptor{}, err
	}
	return d, nil
}

// FinishSave applies the response to a save. On success the form closes and the
// returned Pending refreshes the current page.
func (s *Screen) FinishSave(env *models.Envelope, err error) (Pending, error) {
	if err := s.finishMutation(env, err); err != nil {
		return Pending{}, err
	}
	s.CloseForm()
	return s.Load(), nil
}

// BeginDelete asks for confirmation before deleting one record.
func (s *Screen) BeginDelete(id string) (Confirmation, error) {
	d, err := s.saver.PrepareDelete(id)
	if err != nil {
		s.notify(NoticeWarning, err.Error())
		return Confirmation{}, err
	}
	c := Confirmation{Prompt: deletePrompt(), Descriptor: d}
	s.pending = &c
	return c, nil
}

// BeginDeleteBatch asks for confirmation before deleting every checked row. With nothing
// checked it shows a warning and asks nothing.
func (s *Screen) BeginDeleteBatch() (Confirmation, error) {
	d, err := s.saver.PrepareDeleteBatch(s.selection.Selected())
	if err != nil {
		s.notify(NoticeWarning, err.Error())
		return Confirmation{}, err
	}
	c := Confirmation{Prompt: batchDeletePrompt(len(d.IDs)), Descriptor: d}
	s.pending = &c
	return c, nil
}

// Confirm accepts the pending confirmation and returns its descriptor.
func (s *Screen) Confirm() (Descriptor, bool) {
	if s.pending == nil {
		return Descriptor{}, false
	}
	d := s.pending.Descriptor
	s.pending = nil
	return d, true
}

// Cancel drops the pending confirmation without sending anything.
func (s *Screen) Cancel() {
	s.pending = nil
}

// FinishDelete applies the response to a delete. On success the selection is cleared
// and the returned Pending refreshes the current page. A failure keeps the selection.
func (s *Screen) FinishDelete(env *models.Envelope, err error) (Pending, error) {
	if err := s.finishMutation(env, err); err != nil {
		return Pending{}, err
	}
	s.selection.Clear()
	return s.Load(), nil
}

func (s *Screen) finishMutation(env *models.Envelope, err error) error {
	if err != nil {
		s.notify(NoticeError, transportMutationText)
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportMutationText)
	}
	if !env.Success() {
		s.notify(NoticeError, env.Message)
		return appErrors.Clone(appErrors.ErrApplication, env.Message)
	}
	s.notify(NoticeSuccess, env.Message)
	return nil
}

// BeginLoadForEdit returns the descriptor fetching one record for editing.
func (s *Screen) BeginLoadForEdit(id string) (Descriptor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		err := required("id")
		s.notify(NoticeWarning, err.Error())
		return Descriptor{}, err
	}
	return Descriptor{Action: ActionGetByID, ID: id}, nil
}

// FinishLoadForEdit opens the form in edit mode populated from the fetched record.
// On failure the form is not shown.
func (s *Screen) FinishLoadForEdit(env *models.Envelope, err error) (FormValues, error) {
	if err != nil {
		s.notify(NoticeError, transportQueryText)
		return FormValues{}, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportQueryText)
	}
	if !env.Success() {
		s.notify(NoticeError, env.Message)
		return FormValues{}, appErrors.Clone(appErrors.ErrApplication, env.Message)
	}
	var student models.Student
	if decodeErr := env.Decode(&student); decodeErr != nil {
		s.notify(NoticeError, transportQueryText)
		return FormValues{}, appErrors.Wrap(decodeErr, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportQueryText)
	}
	values := FormFromStudent(student)
	s.form = FormState{Open: true, Mode: ModeEdit, Values: values}
	return values, nil
}
