package model

import "github.com/google/uuid"

// StudentStatistics is the detail view of a single student.
type StudentStatistics struct {
	Student    StudentProfile   `json:"student"`
	Statistics PerformanceStats `json:"statistics"`
}

// StudentProfile carries the scalar attributes of a student.
type StudentProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Age            *float64  `json:"age"`
	Gender         string    `json:"gender"`
	Specialization string    `json:"specialization"`
}

// PerformanceStats holds overall and per-semester results.
type PerformanceStats struct {
	OverallPercentage float64         `json:"overall_percentage"`
	TotalMarks        float64         `json:"total_marks"`
	TotalMaxMarks     float64         `json:"total_max_marks"`
	Semesters         []SemesterStats `json:"semesters"`
}

// SemesterStats holds the results of one semester.
type SemesterStats struct {
	Semester   int           `json:"semester"`
	TotalMarks float64       `json:"total_marks"`
	MaxMarks   float64       `json:"max_marks"`
	Percentage float64       `json:"percentage"`
	Courses    []CourseStats `json:"courses"`
}

// CourseStats holds the result of one course.
type CourseStats struct {
	Name       string  `json:"name"`
	CT         float64 `json:"ct"`
	Mid        float64 `json:"mid"`
	Final      float64 `json:"final"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}
