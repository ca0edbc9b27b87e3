package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
)

type field struct {
	key         string
	label       string
	placeholder string
	limit       int
}

var filterFields = []field{
	{key: "studentNo", label: "Student No", limit: 20},
	{key: "name", label: "Name", limit: 50},
	{key: "gender", label: "Gender", placeholder: "1 male, 2 female", limit: 1},
	{key: "major", label: "Major", limit: 100},
	{key: "className", label: "Class", limit: 50},
	{key: "status", label: "Status", placeholder: "1 enrolled, 2 suspended, 3 graduated", limit: 1},
}

var formFields = []field{
	{key: "studentNo", label: "Student No *", limit: 20},
	{key: "name", label: "Name *", limit: 50},
	{key: "gender", label: "Gender *", placeholder: "1 male, 2 female", limit: 1},
	{key: "age", label: "Age", limit: 3},
	{key: "major", label: "Major", limit: 100},
	{key: "className", label: "Class", limit: 50},
	{key: "phone", label: "Phone", limit: 20},
	{key: "email", label: "Email", limit: 100},
	{key: "enrollmentDate", label: "Enrolled", placeholder: "YYYY-MM-DD", limit: 10},
	{key: "status", label: "Status", placeholder: "1 enrolled, 2 suspended, 3 graduated", limit: 1},
}

func newInputs(fields []field) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.placeholder
		in.CharLimit = f.limit
		in.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = in
	}
	return inputs
}

func focusInput(inputs []textinput.Model, index int) {
	for i := range inputs {
		if i == index {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func fieldIndex(fields []field, key string) int {
	for i, f := range fields {
		if f.key == key {
			return i
		}
	}
	return -1
}

func filterValues(inputs []textinput.Model) models.FilterCriteria {
	return models.FilterCriteria{
		StudentNo: inputs[0].Value(),
		Name:      inputs[1].Value(),
		Gender:    inputs[2].Value(),
		Major:     inputs[3].Value(),
		ClassName: inputs[4].Value(),
		Status:    inputs[5].Value(),
	}
}

func setFilterValues(inputs []textinput.Model, f models.FilterCriteria) {
	for i, v := range []string{f.StudentNo, f.Name, f.Gender, f.Major, f.ClassName, f.Status} {
		inputs[i].SetValue(v)
	}
}

func formValues(inputs []textinput.Model, id string) roster.FormValues {
	return roster.FormValues{
		ID:             id,
		StudentNo:      inputs[0].Value(),
		Name:           inputs[1].Value(),
		Gender:         inputs[2].Value(),
		Age:            inputs[3].Value(),
		Major:          inputs[4].Value(),
		ClassName:      inputs[5].Value(),
		Phone:          inputs[6].Value(),
		Email:          inputs[7].Value(),
		EnrollmentDate: inputs[8].Value(),
		Status:         inputs[9].Value(),
	}
}

func setFormValues(inputs []textinput.Model, v roster.FormValues) {
	values := []string{v.StudentNo, v.Name, v.Gender, v.Age, v.Major, v.ClassName, v.Phone, v.Email, v.EnrollmentDate, v.Status}
	for i, value := range values {
		inputs[i].SetValue(value)
	}
}
