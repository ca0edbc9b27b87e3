package roster

import "fmt"

// ControlKind names one of the four pagination buttons.
type ControlKind int

const (
	ControlFirst ControlKind = iota
	ControlPrev
	ControlNext
	ControlLast
)

// Control is a pagination button: the page it leads to and whether it can be used.
type Control struct {
	Target   int
	Disabled bool
}

// Controls are the pagination affordances for the rendered page.
type Controls struct {
	First Control
	Prev  Control
	Next  Control
	Last  Control
	Label string
}

// Get returns the control of the given kind.
func (c Controls) Get(kind ControlKind) Control {
	switch kind {
	case ControlFirst:
		return c.First
	case ControlPrev:
		return c.Prev
	case ControlNext:
		return c.Next
	default:
		return c.Last
	}
}

// ComputeControls derives the pagination controls. First and prev are disabled on the
// first page; next and last are disabled on the last page or when there are no pages.
func ComputeControls(currentPage, totalPages, totalCount int) Controls {
	atStart := currentPage <= 1
	atEnd := totalPages == 0 || currentPage >= totalPages
	return Controls{
		First: Control{Target: 1, Disabled: atStart},
		Prev:  Control{Target: currentPage - 1, Disabled: atStart},
		Next:  Control{Target: currentPage + 1, Disabled: atEnd},
		Last:  Control{Target: totalPages, Disabled: atEnd},
		Label: fmt.Sprintf("page %d of %d, %d records", currentPage, totalPages, totalCount),
	}
}
