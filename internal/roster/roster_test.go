package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-roster/internal/models"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

type fakeEndpoint struct {
	sent      []Descriptor
	responses []fakeResponse
}

type fakeResponse struct {
	env *models.Envelope
	err error
}

func (f *fakeEndpoint) Do(_ context.Context, d Descriptor) (*models.Envelope, error) {
	f.sent = append(f.sent, d)
	if len(f.responses) == 0 {
		return nil, errors.New("no response queued")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r.env, r.err
}

func (f *fakeEndpoint) queue(env *models.Envelope, err error) {
	f.responses = append(f.responses, fakeResponse{env: env, err: err})
}

func envelope(t *testing.T, code int, message string, data interface{}) *models.Envelope {
	t.Helper()
	env := &models.Envelope{Code: code, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		env.Data = raw
	}
	return env
}

func pageOf(current, size, total int) *models.PageResult {
	records := make([]models.Student, 0, size)
	start := (current - 1) * size
	for i := start; i < total && i < start+size; i++ {
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

func TestBuildOmitsBlankFilters(t *testing.T) {
	d := Build(models.DefaultQueryState(10), models.FilterCriteria{Name: "   ", Major: " CS "}, ActionQuery)
	v := d.Values()

	assert.Equal(t, "query", v.Get("action"))
	assert.Equal(t, "1", v.Get("currentPage"))
	assert.Equal(t, "10", v.Get("pageSize"))
	assert.Equal(t, "id", v.Get("orderBy"))
	assert.Equal(t, "DESC", v.Get("orderType"))
	assert.Equal(t, "CS", v.Get("major"))
	_, hasName := v["name"]
	assert.False(t, hasName)
	assert.Equal(t, http.MethodGet, d.Method())
}

func TestDescriptorValuesForMutations(t *testing.T) {
	batch := Descriptor{Action: ActionDeleteBatch, IDs: []string{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, batch.Values()["ids[]"])
	assert.Equal(t, http.MethodPost, batch.Method())

	update := Descriptor{Action: ActionUpdate, Form: FormValues{ID: "x", StudentNo: "S1", Name: "N", Gender: "1"}}
	v := update.Values()
	assert.Equal(t, "x", v.Get("id"))
	assert.Equal(t, "S1", v.Get("studentNo"))

	get := Descriptor{Action: ActionGetByID, ID: "x"}
	assert.Equal(t, "x", get.Values().Get("id"))
	assert.Equal(t, http.MethodGet, get.Method())
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("deleteBatch")
	assert.True(t, ok)
	assert.Equal(t, ActionDeleteBatch, a)
	_, ok = ParseAction("drop")
	assert.False(t, ok)
}

func TestRenderEmptyPageHasSinglePlaceholderRow(t *testing.T) {
	view := Render(nil)
	require.Len(t, view.Rows, 1)
	assert.True(t, view.Rows[0].Placeholder)
	assert.Equal(t, []string{EmptyText}, view.Rows[0].Cells)
	assert.True(t, view.Empty())
	assert.Empty(t, view.RowIDs())
	assert.Equal(t, len(Columns())+2, view.Span)
}

func TestRenderPlaceholderForMissingFields(t *testing.T) {
	age := 20
	date, err := models.ParseDate("2023-09-01")
	require.NoError(t, err)
	view := Render([]models.Student{
		{ID: "1", StudentNo: "S1", Name: "Ann", Gender: models.GenderFemale, Age: &age, EnrollmentDate: &date, Status: models.StatusGraduated},
		{ID: "2", StudentNo: "S2", Name: "Bob", Gender: models.GenderMale, Status: models.StatusSuspended},
	})
	require.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"1", "2"}, view.RowIDs())

	first := view.Rows[0].Cells
	assert.Equal(t, "female", first[3])
	assert.Equal(t, "20", first[4])
	assert.Equal(t, "2023-09-01", first[9])
	assert.Equal(t, "graduated", first[10])

	second := view.Rows[1].Cells
	assert.Equal(t, Placeholder, second[4])
	assert.Equal(t, Placeholder, second[5])
	assert.Equal(t, Placeholder, second[8])
	assert.Equal(t, Placeholder, second[9])
}

func TestComputeControlsProperty(t *testing.T) {
	for totalPages := 0; totalPages <= 6; totalPages++ {
		last := totalPages
		if last == 0 {
			last = 1
		}
		for page := 1; page <= last; page++ {
			c := ComputeControls(page, totalPages, totalPages*10)
			assert.Equal(t, page == 1, c.First.Disabled, "first p=%d t=%d", page, totalPages)
			assert.Equal(t, page == 1, c.Prev.Disabled, "prev p=%d t=%d", page, totalPages)
			atEnd := totalPages == 0 || page == totalPages
			assert.Equal(t, atEnd, c.Next.Disabled, "next p=%d t=%d", page, totalPages)
			assert.Equal(t, atEnd, c.Last.Disabled, "last p=%d t=%d", page, totalPages)
		}
	}

	c := ComputeControls(2, 3, 25)
	assert.Equal(t, 1, c.Get(ControlFirst).Target)
	assert.Equal(t, 1, c.Get(ControlPrev).Target)
	assert.Equal(t, 3, c.Get(ControlNext).Target)
	assert.Equal(t, 3, c.Get(ControlLast).Target)
}

func TestToggleSortRoundTrip(t *testing.T) {
	start := models.QueryState{Page: 3, PageSize: 10, SortField: models.SortByName, SortDirection: models.SortAsc}

	once := ToggleSort(start, models.SortByName)
	assert.Equal(t, models.SortDesc, once.SortDirection)
	assert.Equal(t, 1, once.Page)

	twice := ToggleSort(once, models.SortByName)
	assert.Equal(t, start.SortField, twice.SortField)
	assert.Equal(t, start.SortDirection, twice.SortDirection)

	other := ToggleSort(twice, models.SortByAge)
	assert.Equal(t, models.SortByAge, other.SortField)
	assert.Equal(t, models.SortAsc, other.SortDirection)
}

func TestSelectionRoundTrip(t *testing.T) {
	tracker := NewSelectionTracker()
	rows := []string{"a", "b", "c"}
	tracker.Reset(rows)

	tracker.ToggleAll(true)
	assert.Equal(t, rows, tracker.Selected())
	assert.Equal(t, SelectChecked, tracker.State())

	tracker.ToggleAll(false)
	assert.Empty(t, tracker.Selected())
	assert.Equal(t, SelectUnchecked, tracker.State())

	assert.True(t, tracker.ToggleOne("b"))
	assert.Equal(t, SelectUnchecked, tracker.State())
	assert.True(t, tracker.ToggleOne("a"))
	assert.True(t, tracker.ToggleOne("c"))
	assert.Equal(t, SelectChecked, tracker.State())
	assert.False(t, tracker.ToggleOne("c"))
	assert.Equal(t, []string{"a", "b"}, tracker.Selected())

	assert.False(t, tracker.ToggleOne("zzz"))
	assert.Equal(t, SelectUnchecked, tracker.SelectAllState(nil))

	tracker.Reset([]string{"d"})
	assert.Zero(t, tracker.Len())
}

func TestValidateOrder(t *testing.T) {
	err := FormValues{}.Validate()
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "studentNo", fieldErr.Field)
	assert.Equal(t, "studentNo required", err.Error())
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	assert.EqualError(t, FormValues{StudentNo: "S1"}.Validate(), "name required")
	assert.EqualError(t, FormValues{StudentNo: "S1", Name: " "}.Validate(), "name required")
	assert.EqualError(t, FormValues{StudentNo: "S1", Name: "A"}.Validate(), "gender required")
	assert.EqualError(t, FormValues{StudentNo: "S1", Name: "A", Gender: "0"}.Validate(), "gender required")
	assert.EqualError(t, FormValues{StudentNo: "S1", Name: "A", Gender: "x"}.Validate(), "gender required")
	assert.NoError(t, FormValues{StudentNo: "S1", Name: "A", Gender: "2"}.Validate())
}

func TestFormFromStudent(t *testing.T) {
	age := 19
	date, err := models.ParseDate("2022-02-03")
	require.NoError(t, err)
	form := FormFromStudent(models.Student{
		ID: "x", StudentNo: "S9", Name: "Z", Gender: models.GenderFemale, Age: &age,
		EnrollmentDate: &date, Status: models.StatusSuspended,
	})
	assert.Equal(t, FormValues{
		ID: "x", StudentNo: "S9", Name: "Z", Gender: "2", Age: "19",
		EnrollmentDate: "2022-02-03", Status: "2",
	}, form)

	zero := 0
	form = FormFromStudent(models.Student{ID: "y", StudentNo: "S8", Name: "Y", Gender: models.GenderMale, Age: &zero})
	assert.Empty(t, form.Age)
	assert.Equal(t, Placeholder, Render([]models.Student{{ID: "y", Age: &zero}}).Rows[0].Cells[4])
}

func TestPrepareSave(t *testing.T) {
	var saver SaveCoordinator

	d, err := saver.PrepareSave(FormValues{ID: "ignored", StudentNo: " S1 ", Name: "A", Gender: "1"}, ModeAdd)
	require.NoError(t, err)
	assert.Equal(t, ActionAdd, d.Action)
	assert.Equal(t, "S1", d.Form.StudentNo)
	assert.Empty(t, d.Form.ID)

	d, err = saver.PrepareSave(FormValues{ID: "x", StudentNo: "S1", Name: "A", Gender: "1"}, ModeEdit)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, d.Action)
	assert.Equal(t, "x", d.ID)

	_, err = saver.PrepareSave(FormValues{StudentNo: "S1", Name: "A", Gender: "1"}, ModeEdit)
	assert.EqualError(t, err, "id required")

	_, err = saver.PrepareDeleteBatch(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestInitialLoadScenario(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "query succeeded", pageOf(1, 10, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)

	require.NoError(t, ctrl.Load(context.Background()))

	require.Len(t, endpoint.sent, 1)
	sent := endpoint.sent[0].Values()
	assert.Equal(t, "1", sent.Get("currentPage"))
	assert.Equal(t, "10", sent.Get("pageSize"))
	assert.Equal(t, "id", sent.Get("orderBy"))
	assert.Equal(t, "DESC", sent.Get("orderType"))

	screen := ctrl.Screen()
	assert.Len(t, screen.Table().Rows, 10)
	assert.Equal(t, "page 1 of 3, 25 records", screen.Controls().Label)
	assert.True(t, screen.Controls().First.Disabled)
	assert.True(t, screen.Controls().Prev.Disabled)
	assert.False(t, screen.Controls().Next.Disabled)
	assert.False(t, screen.Controls().Last.Disabled)
}

func TestQueryFailureLeavesStateUnchanged(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	before := ctrl.Screen().State()
	rows := ctrl.Screen().Table()

	endpoint.queue(envelope(t, 500, "db error", nil), nil)
	err := ctrl.GoTo(context.Background(), ControlNext)
	assert.ErrorIs(t, err, appErrors.ErrApplication)

	screen := ctrl.Screen()
	assert.Equal(t, before, screen.State())
	assert.Equal(t, rows, screen.Table())
	assert.Equal(t, NoticeError, screen.Notice().Level)
	assert.Equal(t, "db error", screen.Notice().Text)

	endpoint.queue(nil, errors.New("connection refused"))
	err = ctrl.Sort(context.Background(), models.SortByName)
	assert.ErrorIs(t, err, appErrors.ErrTransport)
	assert.Equal(t, before, screen.State())
	assert.Equal(t, transportQueryText, screen.Notice().Text)
}

func TestPaginationUsesAppliedFilters(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)
	require.NoError(t, ctrl.SubmitFilters(context.Background(), models.FilterCriteria{Major: "CS"}))

	endpoint.queue(envelope(t, 200, "ok", pageOf(2, 10, 25)), nil)
	require.NoError(t, ctrl.GoTo(context.Background(), ControlNext))

	last := endpoint.sent[len(endpoint.sent)-1].Values()
	assert.Equal(t, "2", last.Get("currentPage"))
	assert.Equal(t, "CS", last.Get("major"))
	assert.Equal(t, 2, ctrl.Screen().State().Page)
	assert.Equal(t, "CS", ctrl.Screen().Filters().Major)
}

func TestConfirmIDs(t *testing.T) {
	var saver SaveCoordinator

	one, err := saver.ConfirmIDs([]string{"s1"})
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, one.Descriptor.Action)
	assert.Equal(t, "s1", one.Descriptor.ID)
	assert.Equal(t, "Delete this student?", one.Prompt)

	many, err := saver.ConfirmIDs([]string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, ActionDeleteBatch, many.Descriptor.Action)
	assert.Equal(t, "Delete the 2 selected students?", many.Prompt)

	_, err = saver.ConfirmIDs(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestSeekQueriesExplicitState(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(3, 5, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)

	state := models.QueryState{Page: 3, PageSize: 5, SortField: models.SortByName, SortDirection: models.SortAsc}
	require.NoError(t, ctrl.Seek(context.Background(), state, models.FilterCriteria{Name: " Ann "}))

	sent := endpoint.sent[0].Values()
	assert.Equal(t, "3", sent.Get("currentPage"))
	assert.Equal(t, "5", sent.Get("pageSize"))
	assert.Equal(t, "name", sent.Get("orderBy"))
	assert.Equal(t, "ASC", sent.Get("orderType"))
	assert.Equal(t, "Ann", sent.Get("name"))
	assert.Equal(t, state, ctrl.Screen().State())

	err := ctrl.Seek(context.Background(), models.QueryState{Page: 0, PageSize: 5, SortField: models.SortByID}, models.FilterCriteria{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	err = ctrl.Seek(context.Background(), models.QueryState{Page: 1, PageSize: 5, SortField: "phone"}, models.FilterCriteria{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Len(t, endpoint.sent, 1)
}

func TestDisabledControlIsNoop(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 5)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.GoTo(context.Background(), ControlNext))
	require.NoError(t, ctrl.GoTo(context.Background(), ControlPrev))
	assert.Len(t, endpoint.sent, 1)
}

func TestResetRestoresDefaultsKeepingPageSize(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 20, 25)), nil)
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 20, 25)), nil)
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 20, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)
	ctx := context.Background()

	require.NoError(t, ctrl.ChangePageSize(ctx, 20))
	require.NoError(t, ctrl.Sort(ctx, models.SortByAge))
	require.NoError(t, ctrl.Reset(ctx))

	assert.Equal(t, models.QueryState{Page: 1, PageSize: 20, SortField: models.SortByID, SortDirection: models.SortDesc}, ctrl.Screen().State())
	assert.True(t, ctrl.Screen().Filters().IsEmpty())

	assert.Error(t, ctrl.ChangePageSize(ctx, 0))
	assert.Len(t, endpoint.sent, 3)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	screen := NewScreen(10)
	first := screen.SubmitFilters(models.FilterCriteria{Name: "old"})
	second := screen.SubmitFilters(models.FilterCriteria{Name: "new"})

	require.NoError(t, screen.FinishQuery(second, envelope(t, 200, "ok", pageOf(1, 10, 3)), nil))
	err := screen.FinishQuery(first, envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, "new", screen.Filters().Name)
	assert.Equal(t, 3, screen.Page().TotalCount)
}

func TestBatchDeleteWithEmptySelection(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
	asked := false
	ctrl := NewController(NewScreen(10), endpoint, ConfirmFunc(func(string) bool { asked = true; return true }), nil)
	require.NoError(t, ctrl.Load(context.Background()))
	before := ctrl.Screen().State()

	err := ctrl.DeleteBatch(context.Background())
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.False(t, asked)
	assert.Len(t, endpoint.sent, 1)
	assert.Equal(t, before, ctrl.Screen().State())
	assert.Equal(t, NoticeWarning, ctrl.Screen().Notice().Level)
}

func TestBatchDeleteSendsSelectionAndRefreshes(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
	ctrl := NewController(NewScreen(10), endpoint, AlwaysConfirm, nil)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	ctrl.Screen().Selection().ToggleOne("id-01")
	ctrl.Screen().Selection().ToggleOne("id-03")

	endpoint.queue(envelope(t, 200, "deleted 2 records", nil), nil)
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 23)), nil)
	require.NoError(t, ctrl.DeleteBatch(ctx))

	require.Len(t, endpoint.sent, 3)
	assert.Equal(t, []string{"id-01", "id-03"}, endpoint.sent[1].IDs)
	assert.Equal(t, ActionQuery, endpoint.sent[2].Action)
	assert.Equal(t, "page 1 of 3, 23 records", ctrl.Screen().Controls().Label)
	assert.Zero(t, ctrl.Screen().Selection().Len())
}

func TestDeleteFailureLeavesScreenUntouched(t *testing.T) {
	failures := []struct {
		name   string
		env    *models.Envelope
		err    error
		notice string
		kind   *appErrors.Error
	}{
		{name: "server rejects", env: &models.Envelope{Code: 500, Message: "db error"}, notice: "db error", kind: appErrors.ErrApplication},
		{name: "transport fails", err: errors.New("connection refused"), notice: transportMutationText, kind: appErrors.ErrTransport},
	}
	deletes := []struct {
		name string
		run  func(*Controller) error
	}{
		{name: "one", run: func(c *Controller) error { return c.DeleteOne(context.Background(), "id-02") }},
		{name: "batch", run: func(c *Controller) error { return c.DeleteBatch(context.Background()) }},
	}

	for _, del := range deletes {
		for _, tc := range failures {
			t.Run(del.name+"/"+tc.name, func(t *testing.T) {
				endpoint := &fakeEndpoint{}
				endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 25)), nil)
				ctrl := NewController(NewScreen(10), endpoint, AlwaysConfirm, nil)
				require.NoError(t, ctrl.Load(context.Background()))

				screen := ctrl.Screen()
				screen.Selection().ToggleOne("id-01")
				screen.Selection().ToggleOne("id-03")
				state := screen.State()
				table := screen.Table()

				endpoint.queue(tc.env, tc.err)
				err := del.run(ctrl)
				assert.ErrorIs(t, err, tc.kind)

				require.Len(t, endpoint.sent, 2, "no refresh after a failed delete")
				assert.Equal(t, NoticeError, screen.Notice().Level)
				assert.Equal(t, tc.notice, screen.Notice().Text)
				assert.Equal(t, state, screen.State())
				assert.Equal(t, table, screen.Table())
				assert.Equal(t, []string{"id-01", "id-03"}, screen.Selection().Selected())
				assert.Nil(t, screen.PendingConfirmation())
			})
		}
	}
}

func TestDeclinedDeleteSendsNothing(t *testing.T) {
	endpoint := &fakeEndpoint{}
	ctrl := NewController(NewScreen(10), endpoint, ConfirmFunc(func(string) bool { return false }), nil)

	err := ctrl.DeleteOne(context.Background(), "x")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, endpoint.sent)
	assert.Nil(t, ctrl.Screen().PendingConfirmation())
}

func TestSaveValidationKeepsFormOpen(t *testing.T) {
	endpoint := &fakeEndpoint{}
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)
	ctrl.Screen().OpenAdd()

	values := FormValues{Name: "Ann", Gender: "2", Major: "Math"}
	err := ctrl.Save(context.Background(), values, ModeAdd)
	assert.EqualError(t, err, "studentNo required")
	assert.Empty(t, endpoint.sent)

	form := ctrl.Screen().Form()
	assert.True(t, form.Open)
	assert.Equal(t, values, form.Values)
	assert.Equal(t, NoticeWarning, ctrl.Screen().Notice().Level)
	assert.Equal(t, "studentNo required", ctrl.Screen().Notice().Text)
}

func TestSaveServerFailureShowsMessageVerbatim(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 500, "student number already exists", nil), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)

	values := FormValues{StudentNo: "S1", Name: "Ann", Gender: "2"}
	err := ctrl.Save(context.Background(), values, ModeAdd)
	assert.ErrorIs(t, err, appErrors.ErrApplication)
	assert.Equal(t, "student number already exists", ctrl.Screen().Notice().Text)
	assert.True(t, ctrl.Screen().Form().Open)
	assert.Len(t, endpoint.sent, 1)
}

func TestSaveSuccessClosesFormAndRefreshes(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "student added", nil), nil)
	endpoint.queue(envelope(t, 200, "ok", pageOf(1, 10, 1)), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)

	require.NoError(t, ctrl.Save(context.Background(), FormValues{StudentNo: "S1", Name: "Ann", Gender: "2"}, ModeAdd))
	assert.False(t, ctrl.Screen().Form().Open)
	assert.Equal(t, ActionAdd, endpoint.sent[0].Action)
	assert.Equal(t, ActionQuery, endpoint.sent[1].Action)
	assert.Equal(t, NoticeSuccess, ctrl.Screen().Notice().Level)
	assert.Equal(t, "student added", ctrl.Screen().Notice().Text)
}

func TestLoadForEdit(t *testing.T) {
	endpoint := &fakeEndpoint{}
	endpoint.queue(envelope(t, 200, "ok", models.Student{ID: "x", StudentNo: "S1", Name: "Ann", Gender: models.GenderFemale, Status: models.StatusEnrolled}), nil)
	endpoint.queue(envelope(t, 500, "student not found", nil), nil)
	ctrl := NewController(NewScreen(10), endpoint, nil, nil)

	values, err := ctrl.LoadForEdit(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "S1", values.StudentNo)
	assert.Equal(t, "2", values.Gender)
	assert.Equal(t, ModeEdit, ctrl.Screen().Form().Mode)
	assert.True(t, ctrl.Screen().Form().Open)

	ctrl.Screen().CloseForm()
	_, err = ctrl.LoadForEdit(context.Background(), "y")
	assert.Error(t, err)
	assert.False(t, ctrl.Screen().Form().Open)
	assert.Equal(t, "student not found", ctrl.Screen().Notice().Text)
}

func TestDismissNoticeKeepsNewer(t *testing.T) {
	screen := NewScreen(10)
	first := screen.notify(NoticeInfo, "one")
	second := screen.notify(NoticeInfo, "two")

	screen.DismissNotice(first.ID)
	assert.Equal(t, "two", screen.Notice().Text)
	screen.DismissNotice(second.ID)
	assert.False(t, screen.Notice().Visible())
}
