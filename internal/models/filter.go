package models

import "strings"

// FilterField identifies one of the three filter inputs.
type FilterField string

// Filter inputs, named after their shareable URL parameters.
const (
	FieldDate   FilterField = "date"
	FieldCourse FilterField = "course"
	FieldQuery  FilterField = "q"
)

// FilterFields lists the filter inputs in URL order.
var FilterFields = []FilterField{FieldDate, FieldCourse, FieldQuery}

// FilterState holds the raw filter inputs.
type FilterState struct {
	Date   string `json:"date"`
	Course string `json:"course"`
	Query  string `json:"q"`
}

// Get returns the value of a single filter input.
func (s FilterState) Get(field FilterField) string {
	switch field {
	case FieldDate:
		return s.Date
	case FieldCourse:
		return s.Course
	case FieldQuery:
		return s.Query
	}

	return ""
}

// With returns a copy of s with one input replaced.
func (s FilterState) With(field FilterField, value string) FilterState {
	switch field {
	case FieldDate:
		s.Date = value
	case FieldCourse:
		s.Course = value
	case FieldQuery:
		s.Query = value
	}

	return s
}

// IsEmpty reports whether every input is blank.
func (s FilterState) IsEmpty() bool {
	return strings.TrimSpace(s.Date) == "" &&
		strings.TrimSpace(s.Course) == "" &&
		strings.TrimSpace(s.Query) == ""
}
