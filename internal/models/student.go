package models

import "time"

// Gender is the stored gender code of a student.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
)

// Text returns the display text for the gender code. Anything but male displays as female.
func (g Gender) Text() string {
	if g == GenderMale {
		return "male"
	}
	return "female"
}

// Valid reports whether g is one of the known gender codes.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Status is the enrollment status code of a student.
type Status int

const (
	StatusEnrolled  Status = 1
	StatusSuspended Status = 2
	StatusGraduated Status = 3
)

// Text returns the display text for the status code.
func (s Status) Text() string {
	switch s {
	case StatusEnrolled:
		return "enrolled"
	case StatusSuspended:
		return "suspended"
	case StatusGraduated:
		return "graduated"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	return s >= StatusEnrolled && s <= StatusGraduated
}

// Student is one roster entry. ID is owned by the backend and treated as an opaque key.
type Student struct {
	ID             string    `db:"id" json:"id"`
	StudentNo      string    `db:"student_no" json:"studentNo"`
	Name           string    `db:"name" json:"name"`
	Gender         Gender    `db:"gender" json:"gender"`
	GenderText     string    `db:"-" json:"genderText"`
	Age            *int      `db:"age" json:"age"`
	Major          string    `db:"major" json:"major"`
	ClassName      string    `db:"class_name" json:"className"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	EnrollmentDate *Date     `db:"enrollment_date" json:"enrollmentDate"`
	Status         Status    `db:"status" json:"status"`
	StatusText     string    `db:"-" json:"statusText"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

// Decorate fills the derived display texts from the stored codes.
func (s *Student) Decorate() {
	s.GenderText = s.Gender.Text()
	s.StatusText = s.Status.Text()
}

// DisplayGender prefers the server supplied text and falls back to the code.
func (s Student) DisplayGender() string {
	if s.GenderText != "" {
		return s.GenderText
	}
	return s.Gender.Text()
}

// DisplayStatus prefers the server supplied text and falls back to the code.
func (s Student) DisplayStatus() string {
	if s.StatusText != "" {
		return s.StatusText
	}
	return s.Status.Text()
}

// StudentFilter encapsulates the search parameters accepted by the query action.
type StudentFilter struct {
	StudentNo string
	Name      string
	Major     string
	ClassName string
	Gender    *Gender
	Status    *Status
	Page      int
	PageSize  int
	SortBy    SortField
	SortOrder SortDirection
}
