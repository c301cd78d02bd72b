package model

import (
	"strings"

	"github.com/google/uuid"
)

// GenderMatchMode controls how the gender filter is compared against stored values.
type GenderMatchMode string

const (
	// GenderMatchContains is a case-insensitive substring match.
	GenderMatchContains GenderMatchMode = "contains"
	// GenderMatchExact is a case-insensitive equality match.
	GenderMatchExact GenderMatchMode = "exact"
)

// ParseGenderMatchMode returns the mode named by s, defaulting to contains.
func ParseGenderMatchMode(s string) GenderMatchMode {
	if GenderMatchMode(strings.ToLower(strings.TrimSpace(s))) == GenderMatchExact {
		return GenderMatchExact
	}
	return GenderMatchContains
}

// Matches reports whether a stored gender satisfies the filter under this mode.
// An empty filter matches everything.
func (m GenderMatchMode) Matches(stored, filter string) bool {
	if filter == "" {
		return true
	}
	if m == GenderMatchExact {
		return strings.EqualFold(stored, filter)
	}
	return strings.Contains(strings.ToLower(stored), strings.ToLower(filter))
}

// StudentFilter narrows the student records fed to the analytics.
type StudentFilter struct {
	UploadID   *uuid.UUID
	Gender     string
	GenderMode GenderMatchMode
}

// AnalyticsQuery binds the query string of the specialization analytics endpoint.
// "all" (or empty) disables a filter.
type AnalyticsQuery struct {
	Upload string `form:"upload" binding:"omitempty,max=64"`
	Gender string `form:"gender" binding:"omitempty,max=64"`
}

// SpecializationSummary is the top level of the analytics drill-down.
type SpecializationSummary struct {
	Specialization    string           `json:"specialization"`
	TotalStudents     int              `json:"total_students"`
	TotalMarks        float64          `json:"total_marks"`
	TotalMaxMarks     float64          `json:"total_max_marks"`
	AveragePercentage float64          `json:"average_percentage"`
	Courses           []CourseSummary  `json:"courses"`
	Students          []StudentSummary `json:"students"`
}

// CourseSummary aggregates one course of one semester within a specialization.
type CourseSummary struct {
	CourseName        string         `json:"course_name"`
	Semester          int            `json:"semester"`
	TotalMarks        float64        `json:"total_marks"`
	MaxMarks          float64        `json:"max_marks"`
	StudentCount      int            `json:"student_count"`
	AveragePercentage float64        `json:"average_percentage"`
	Students          []CourseResult `json:"students"`
}

// CourseResult is one student's score in a course.
type CourseResult struct {
	StudentID  uuid.UUID `json:"student_id"`
	Name       string    `json:"name"`
	Marks      float64   `json:"marks"`
	CT         float64   `json:"ct"`
	Mid        float64   `json:"mid"`
	Final      float64   `json:"final"`
	Percentage float64   `json:"percentage"`
}

// StudentSummary is one student's totals within a specialization.
type StudentSummary struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Age        *float64   `json:"age"`
	Gender     string     `json:"gender"`
	TotalMarks float64    `json:"total_marks"`
	MaxMarks   float64    `json:"max_marks"`
	Percentage float64    `json:"percentage"`
	Semesters  []Semester `json:"semesters"`
}
