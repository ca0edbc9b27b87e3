package roster

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/sma-roster/internal/models"
)

// Action is the discriminant selecting the server-side operation of a request.
type Action string

const (
	ActionQuery       Action = "query"
	ActionGetByID     Action = "getById"
	ActionAdd         Action = "add"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionDeleteBatch Action = "deleteBatch"
)

// ParseAction resolves the wire name of an action.
func ParseAction(raw string) (Action, bool) {
	switch a := Action(raw); a {
	case ActionQuery, ActionGetByID, ActionAdd, ActionUpdate, ActionDelete, ActionDeleteBatch:
		return a, true
	}
	return "", false
}

// Descriptor fully determines one request to the student endpoint.
type Descriptor struct {
	Action  Action
	State   models.QueryState
	Filters models.FilterCriteria
	ID      string
	IDs     []string
	Form    FormValues
}

// Build combines the query state and the filter form values into a descriptor.
// Filter values are trimmed and empty ones are dropped from the encoding. Page and
// page size must already be positive; Build does not check them.
func Build(state models.QueryState, filters models.FilterCriteria, action Action) Descriptor {
	return Descriptor{Action: action, State: state, Filters: filters.Normalize()}
}

// Method is the HTTP method used to send the descriptor. Reads go out as GET.
func (d Descriptor) Method() string {
	if d.Action == ActionQuery || d.Action == ActionGetByID {
		return http.MethodGet
	}
	return http.MethodPost
}

// Values encodes the descriptor as endpoint parameters.
func (d Descriptor) Values() url.Values {
	v := url.Values{}
	v.Set("action", string(d.Action))

	switch d.Action {
	case ActionQuery:
		v.Set("currentPage", strconv.Itoa(d.State.Page))
		v.Set("pageSize", strconv.Itoa(d.State.PageSize))
		v.Set("orderBy", string(d.State.SortField))
		v.Set("orderType", string(d.State.SortDirection))
		setIfPresent(v, "studentNo", d.Filters.StudentNo)
		setIfPresent(v, "name", d.Filters.Name)
		setIfPresent(v, "gender", d.Filters.Gender)
		setIfPresent(v, "major", d.Filters.Major)
		setIfPresent(v, "className", d.Filters.ClassName)
		setIfPresent(v, "status", d.Filters.Status)
	case ActionGetByID, ActionDelete:
		v.Set("id", d.ID)
	case ActionAdd, ActionUpdate:
		d.Form.encode(v)
		if d.Action == ActionUpdate {
			v.Set("id", d.Form.ID)
		}
	case ActionDeleteBatch:
		for _, id := range d.IDs {
			v.Add("ids[]", id)
		}
	}
	return v
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
