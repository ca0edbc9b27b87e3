package roster

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/sma-roster/internal/models"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

// FormMode tells whether the edit form creates or updates a record.
type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

func (m FormMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// FormValues are the raw values of the edit form. Every field is text, the way a form
// holds it; an empty string means "not set".
type FormValues struct {
	ID             string
	StudentNo      string
	Name           string
	Gender         string
	Age            string
	Major          string
	ClassName      string
	Phone          string
	Email          string
	EnrollmentDate string
	Status         string
}

// FieldError is a local validation failure bound to one form field.
type FieldError struct {
	Field string
	Err   *appErrors.Error
}

func (e *FieldError) Error() string {
	return e.Err.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func required(field string) *FieldError {
	return &FieldError{Field: field, Err: appErrors.Clone(appErrors.ErrValidation, field+" required")}
}

// Normalize trims every value.
func (f FormValues) Normalize() FormValues {
	return FormValues{
		ID:             strings.TrimSpace(f.ID),
		StudentNo:      strings.TrimSpace(f.StudentNo),
		Name:           strings.TrimSpace(f.Name),
		Gender:         strings.TrimSpace(f.Gender),
		Age:            strings.TrimSpace(f.Age),
		Major:          strings.TrimSpace(f.Major),
		ClassName:      strings.TrimSpace(f.ClassName),
		Phone:          strings.TrimSpace(f.Phone),
		Email:          strings.TrimSpace(f.Email),
		EnrollmentDate: strings.TrimSpace(f.EnrollmentDate),
		Status:         strings.TrimSpace(f.Status),
	}
}

// Validate applies the required-field rules in order: studentNo, name, gender.
// Gender must be a known code. The first failing rule is returned as a *FieldError.
func (f FormValues) Validate() error {
	f = f.Normalize()
	switch {
	case f.StudentNo == "":
		return required("studentNo")
	case f.Name == "":
		return required("name")
	case !validGender(f.Gender):
		return required("gender")
	}
	return nil
}

func validGender(code string) bool {
	n, err := strconv.Atoi(code)
	return err == nil && models.Gender(n).Valid()
}

func (f FormValues) encode(v url.Values) {
	v.Set("studentNo", f.StudentNo)
	v.Set("name", f.Name)
	v.Set("gender", f.Gender)
	v.Set("age", f.Age)
	v.Set("major", f.Major)
	v.Set("className", f.ClassName)
	v.Set("phone", f.Phone)
	v.Set("email", f.Email)
	v.Set("enrollmentDate", f.EnrollmentDate)
	v.Set("status", f.Status)
}

// FormFromStudent maps a fetched record onto form values. Absent optional fields become
// empty strings, and so does an age of 0, which the table shows as missing.
func FormFromStudent(s models.Student) FormValues {
	form := FormValues{
		ID:        s.ID,
		StudentNo: s.StudentNo,
		Name:      s.Name,
		Major:     s.Major,
		ClassName: s.ClassName,
		Phone:     s.Phone,
		Email:     s.Email,
	}
	if s.Gender != 0 {
		form.Gender = strconv.Itoa(int(s.Gender))
	}
	if s.Age != nil && *s.Age != 0 {
		form.Age = strconv.Itoa(*s.Age)
	}
	if s.EnrollmentDate != nil {
		form.EnrollmentDate = s.EnrollmentDate.String()
	}
	if s.Status != 0 {
		form.Status = strconv.Itoa(int(s.Status))
	}
	return form
}
