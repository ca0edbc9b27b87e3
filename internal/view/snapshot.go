// Package view renders roster screens for people: as HTML, as terminal text and as
// export datasets. Every record value is treated as untrusted input.
package view

import (
	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
)

// Snapshot is an immutable copy of everything a renderer needs from a screen.
type Snapshot struct {
	Title    string
	State    models.QueryState
	Filters  models.FilterCriteria
	Table    roster.TableView
	Controls roster.Controls
	Selected map[string]bool
	AllState roster.SelectState
	Notice   roster.Notice
}

// SnapshotOf captures the current screen.
func SnapshotOf(screen *roster.Screen, title string) Snapshot {
	selected := make(map[string]bool)
	for _, id := range screen.Selection().Selected() {
		selected[id] = true
	}
	return Snapshot{
		Title:    title,
		State:    screen.State(),
		Filters:  screen.Filters(),
		Table:    screen.Table(),
		Controls: screen.Controls(),
		Selected: selected,
		AllState: screen.Selection().State(),
		Notice:   screen.Notice(),
	}
}

// SortMarker is the header suffix of column c: an arrow on the active sort column.
func (s Snapshot) SortMarker(c roster.Column) string {
	if !c.Sortable() || c.Sort != s.State.SortField {
		return ""
	}
	if s.State.SortDirection == models.SortAsc {
		return "▲"
	}
	return "▼"
}
