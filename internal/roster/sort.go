package roster

import "github.com/noah-isme/sma-roster/internal/models"

// ToggleSort applies a click on a sortable column header. Clicking the active column
// flips the direction; clicking another column sorts it ascending. The page always goes
// back to 1.
func ToggleSort(state models.QueryState, column models.SortField) models.QueryState {
	next := state
	if column == state.SortField {
		next.SortDirection = state.SortDirection.Flip()
	} else {
		next.SortField = column
		next.SortDirection = models.SortAsc
	}
	next.Page = 1
	return next
}
