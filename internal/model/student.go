package model

import (
	"time"

	"github.com/google/uuid"
)

// Student is one normalized gradesheet row.
type Student struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Age            *float64   `json:"age"`
	Gender         string     `json:"gender"`
	Specialization string     `json:"specialization"`
	UploadID       uuid.UUID  `json:"upload_id"`
	Semesters      []Semester `json:"semesters"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Semester groups the courses parsed from SemN_* columns.
type Semester struct {
	Semester int      `json:"semester"`
	Courses  []Course `json:"courses"`
}

// Course holds the three mark components of one course.
type Course struct {
	Name  string  `json:"name"`
	CT    float64 `json:"ct"`
	Mid   float64 `json:"mid"`
	Final float64 `json:"final"`
}

// Total returns CT + Mid + Final.
func (c Course) Total() float64 {
	return c.CT + c.Mid + c.Final
}

// ListStudentsQuery binds the query string of the student listing endpoint.
type ListStudentsQuery struct {
	Upload  string `form:"upload" binding:"omitempty,uuid"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}
