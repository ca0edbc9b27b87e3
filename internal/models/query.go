package models

import "strings"

// SortField is one of the sortable roster columns, spelled as the endpoint expects it.
type SortField string

const (
	SortByID             SortField = "id"
	SortByStudentNo      SortField = "student_no"
	SortByName           SortField = "name"
	SortByAge            SortField = "age"
	SortByMajor          SortField = "major"
	SortByClassName      SortField = "class_name"
	SortByEnrollmentDate SortField = "enrollment_date"
)

var sortFields = []SortField{
	SortByID,
	SortByStudentNo,
	SortByName,
	SortByAge,
	SortByMajor,
	SortByClassName,
	SortByEnrollmentDate,
}

// SortFields lists every sortable column.
func SortFields() []SortField {
	return append([]SortField(nil), sortFields...)
}

// ParseSortField resolves raw into a sortable column.
func ParseSortField(raw string) (SortField, bool) {
	for _, f := range sortFields {
		if string(f) == raw {
			return f, true
		}
	}
	return "", false
}

// SortDirection is ASC or DESC.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ParseSortDirection resolves raw case-insensitively.
func ParseSortDirection(raw string) (SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(SortAsc):
		return SortAsc, true
	case string(SortDesc):
		return SortDesc, true
	}
	return "", false
}

// QueryState is the page/sort position of the roster screen. Page is 1-based.
type QueryState struct {
	Page          int
	PageSize      int
	SortField     SortField
	SortDirection SortDirection
}

// DefaultQueryState is the state the screen starts from and returns to on reset.
func DefaultQueryState(pageSize int) QueryState {
	if pageSize <= 0 {
		pageSize = 10
	}
	return QueryState{Page: 1, PageSize: pageSize, SortField: SortByID, SortDirection: SortDesc}
}

// FilterCriteria holds the raw filter form values. Gender and Status carry their codes
// as strings ("" meaning any).
type FilterCriteria struct {
	StudentNo string
	Name      string
	Gender    string
	Major     string
	ClassName string
	Status    string
}

// Normalize trims every value so that whitespace-only input becomes empty.
func (f FilterCriteria) Normalize() FilterCriteria {
	return FilterCriteria{
		StudentNo: strings.TrimSpace(f.StudentNo),
		Name:      strings.TrimSpace(f.Name),
		Gender:    strings.TrimSpace(f.Gender),
		Major:     strings.TrimSpace(f.Major),
		ClassName: strings.TrimSpace(f.ClassName),
		Status:    strings.TrimSpace(f.Status),
	}
}

// IsEmpty reports whether no filter is set after normalisation.
func (f FilterCriteria) IsEmpty() bool {
	return f.Normalize() == FilterCriteria{}
}
