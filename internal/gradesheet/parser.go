// Package gradesheet turns spreadsheet rows into normalized student records.
package gradesheet

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/studyscope/studyscope-backend/internal/model"
)

// Fixed scalar headers.
const (
	HeaderStudentName    = "Student Name"
	HeaderAge            = "Age"
	HeaderGender         = "Gender"
	HeaderSpecialization = "Specialization"
)

// Component names one of the three mark columns of a course.
type Component string

const (
	ComponentCT    Component = "CT"
	ComponentMid   Component = "Mid"
	ComponentFinal Component = "Final"
)

// maxCellMagnitude bounds accepted numeric cells so that sums over a whole
// upload stay finite.
const maxCellMagnitude = 1e12

var markHeaderRegex = regexp.MustCompile(`^Sem(\d+)_Course(\d+)_(CT|Mid|Final)$`)

// Cell is one header/value pair of a row.
type Cell struct {
	Header string
	Value  string
}

// Row is one spreadsheet row in sheet column order.
type Row []Cell

// Value returns the value of the last cell with the given header, or "".
func (r Row) Value(header string) string {
	v := ""
	for _, c := range r {
		if c.Header == header {
			v = c.Value
		}
	}
	return v
}

// Mark is a single parsed mark column.
type Mark struct {
	Semester  int
	Course    int
	Component Component
	Value     float64
}

// ParseMarkHeader matches a header against Sem<N>_Course<M>_<CT|Mid|Final>.
// N and M must be positive and fit in an int; other headers are ignored.
func ParseMarkHeader(header string) (semester, course int, component Component, ok bool) {
	m := markHeaderRegex.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return 0, 0, "", false
	}
	semester, err := strconv.Atoi(m[1])
	if err != nil || semester < 1 {
		return 0, 0, "", false
	}
	course, err = strconv.Atoi(m[2])
	if err != nil || course < 1 {
		return 0, 0, "", false
	}
	return semester, course, Component(m[3]), true
}

// ExtractMarks returns the mark columns of a row in column order.
// Headers that do not match the mark grammar are ignored.
func ExtractMarks(row Row) []Mark {
	var marks []Mark
	for _, c := range row {
		sem, course, comp, ok := ParseMarkHeader(c.Header)
		if !ok {
			continue
		}
		marks = append(marks, Mark{
			Semester:  sem,
			Course:    course,
			Component: comp,
			Value:     parseNumber(c.Value),
		})
	}
	return marks
}

// ParseRow builds a Student from one row. ID and UploadID are left for the caller.
// It never fails: missing or malformed values fall back to empty/zero.
func ParseRow(row Row) model.Student {
	return model.Student{
		Name:           strings.TrimSpace(row.Value(HeaderStudentName)),
		Age:            parseOptionalNumber(row.Value(HeaderAge)),
		Gender:         strings.TrimSpace(row.Value(HeaderGender)),
		Specialization: strings.TrimSpace(row.Value(HeaderSpecialization)),
		Semesters:      FoldMarks(ExtractMarks(row)),
	}
}

// FoldMarks groups marks into semesters and courses, ordered by number.
// A later mark for the same semester/course/component overwrites an earlier one.
func FoldMarks(marks []Mark) []model.Semester {
	if len(marks) == 0 {
		return []model.Semester{}
	}

	bySemester := make(map[int]map[int]*model.Course)
	for _, m := range marks {
		courses, ok := bySemester[m.Semester]
		if !ok {
			courses = make(map[int]*model.Course)
			bySemester[m.Semester] = courses
		}
		c, ok := courses[m.Course]
		if !ok {
			c = &model.Course{Name: fmt.Sprintf("Course%d", m.Course)}
			courses[m.Course] = c
		}
		switch m.Component {
		case ComponentCT:
			c.CT = m.Value
		case ComponentMid:
			c.Mid = m.Value
		case ComponentFinal:
			c.Final = m.Value
		}
	}

	semesters := make([]model.Semester, 0, len(bySemester))
	for _, semNum := range sortedKeys(bySemester) {
		courses := bySemester[semNum]
		sem := model.Semester{Semester: semNum, Courses: make([]model.Course, 0, len(courses))}
		for _, courseNum := range sortedKeys(courses) {
			sem.Courses = append(sem.Courses, *courses[courseNum])
		}
		semesters = append(semesters, sem)
	}
	return semesters
}

// DistinctSpecializations returns the non-empty specializations in first-seen order.
func DistinctSpecializations(students []model.Student) []string {
	seen := make(map[string]struct{})
	specs := []string{}
	for _, s := range students {
		if s.Specialization == "" {
			continue
		}
		if _, ok := seen[s.Specialization]; ok {
			continue
		}
		seen[s.Specialization] = struct{}{}
		specs = append(specs, s.Specialization)
	}
	return specs
}

func parseNumber(raw string) float64 {
	if f := parseOptionalNumber(raw); f != nil {
		return *f
	}
	return 0
}

// parseOptionalNumber treats NaN, infinities and values beyond
// maxCellMagnitude as malformed.
func parseOptionalNumber(raw string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxCellMagnitude {
		return nil
	}
	return &f
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
