package roster

// SelectState is the state of the select-all checkbox. An indeterminate selection
// collapses to SelectUnchecked.
type SelectState int

const (
	SelectUnchecked SelectState = iota
	SelectChecked
)

// SelectionTracker keeps the ids checked on the currently rendered page.
type SelectionTracker struct {
	rows     []string
	selected map[string]struct{}
}

// NewSelectionTracker returns an empty tracker with no rendered rows.
func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{selected: make(map[string]struct{})}
}

// Reset replaces the rendered rows and clears the selection.
func (s *SelectionTracker) Reset(rowIDs []string) {
	s.rows = append(s.rows[:0:0], rowIDs...)
	s.Clear()
}

// Clear drops every selected id.
func (s *SelectionTracker) Clear() {
	s.selected = make(map[string]struct{})
}

// ToggleOne flips one row and returns its new state. Ids that are not rendered are ignored.
func (s *SelectionTracker) ToggleOne(id string) bool {
	if !s.rendered(id) {
		return false
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// ToggleAll checks or unchecks every rendered row.
func (s *SelectionTracker) ToggleAll(checked bool) {
	s.Clear()
	if !checked {
		return
	}
	for _, id := range s.rows {
		s.selected[id] = struct{}{}
	}
}

// IsSelected reports whether id is checked.
func (s *SelectionTracker) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Len is the number of checked rows.
func (s *SelectionTracker) Len() int {
	return len(s.selected)
}

// Selected returns the checked ids in row order.
func (s *SelectionTracker) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for _, id := range s.rows {
		if _, ok := s.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectAllState is checked only when rowIDs is non-empty and every id is selected.
func (s *SelectionTracker) SelectAllState(rowIDs []string) SelectState {
	if len(rowIDs) == 0 {
		return SelectUnchecked
	}
	for _, id := range rowIDs {
		if _, ok := s.selected[id]; !ok {
			return SelectUnchecked
		}
	}
	return SelectChecked
}

// State is SelectAllState over the rendered rows.
func (s *SelectionTracker) State() SelectState {
	return s.SelectAllState(s.rows)
}

func (s *SelectionTracker) rendered(id string) bool {
	for _, row := range s.rows {
		if row == id {
			return true
		}
	}
	return false
}
