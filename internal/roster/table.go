package roster

import (
	"strconv"

	"github.com/noah-isme/sma-roster/internal/models"
)

const (
	// Placeholder is rendered in place of a missing optional value.
	Placeholder = "-"
	// EmptyText is the content of the single row rendered for an empty page.
	EmptyText = "no data"
)

// Column describes one data column of the roster table. Sort is empty for columns that
// cannot be sorted.
type Column struct {
	Key   string
	Title string
	Sort  models.SortField
}

// Sortable reports whether clicking the column header changes the sort.
func (c Column) Sortable() bool {
	return c.Sort != ""
}

var columns = []Column{
	{Key: "id", Title: "ID", Sort: models.SortByID},
	{Key: "studentNo", Title: "Student No", Sort: models.SortByStudentNo},
	{Key: "name", Title: "Name", Sort: models.SortByName},
	{Key: "gender", Title: "Gender"},
	{Key: "age", Title: "Age", Sort: models.SortByAge},
	{Key: "major", Title: "Major", Sort: models.SortByMajor},
	{Key: "className", Title: "Class", Sort: models.SortByClassName},
	{Key: "phone", Title: "Phone"},
	{Key: "email", Title: "Email"},
	{Key: "enrollmentDate", Title: "Enrolled", Sort: models.SortByEnrollmentDate},
	{Key: "status", Title: "Status"},
}

// Columns returns the data columns in display order.
func Columns() []Column {
	return append([]Column(nil), columns...)
}

// Row is one rendered table row. Placeholder rows carry no ID and a single cell that
// spans the whole table.
type Row struct {
	ID          string
	Cells       []string
	Placeholder bool
}

// TableView is the render instruction set for the roster table body.
type TableView struct {
	Columns []Column
	Rows    []Row
	// Span is the full column count including the selection and action columns.
	Span int
}

// Empty reports whether the view is the "no data" state.
func (t TableView) Empty() bool {
	return len(t.Rows) == 1 && t.Rows[0].Placeholder
}

// RowIDs returns the record ids of the rendered rows in order.
func (t TableView) RowIDs() []string {
	ids := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !row.Placeholder {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Render projects a page of records into table rows, keeping the server's order.
// An empty page yields exactly one placeholder row.
func Render(records []models.Student) TableView {
	view := TableView{Columns: Columns(), Span: len(columns) + 2}
	if len(records) == 0 {
		view.Rows = []Row{{Cells: []string{EmptyText}, Placeholder: true}}
		return view
	}
	view.Rows = make([]Row, 0, len(records))
	for _, record := range records {
		view.Rows = append(view.Rows, Row{ID: record.ID, Cells: cells(record)})
	}
	return view
}

func cells(s models.Student) []string {
	age := ""
	if s.Age != nil && *s.Age != 0 {
		age = strconv.Itoa(*s.Age)
	}
	enrolled := ""
	if s.EnrollmentDate != nil {
		enrolled = s.EnrollmentDate.String()
	}
	values := []string{
		s.ID,
		s.StudentNo,
		s.Name,
		s.DisplayGender(),
		age,
		s.Major,
		s.ClassName,
		s.Phone,
		s.Email,
		enrolled,
		s.DisplayStatus(),
	}
	for i, v := range values {
		if v == "" || v == "null" {
			values[i] = Placeholder
		}
	}
	return values
}
