// Package analytics computes specialization rollups and per-student statistics
// from parsed student records. Everything here is a pure function of its input.
package analytics

import (
	"math"
	"sort"

	"github.com/studyscope/studyscope-backend/internal/model"
)

// DefaultCourseMaxMarks is the maximum CT+Mid+Final of a course when each
// component is scored out of 100.
const DefaultCourseMaxMarks = 300

// Options configures the percentage computations.
type Options struct {
	// CourseMaxMarks is applied to every course in both the specialization
	// rollup and the student detail view.
	CourseMaxMarks float64
}

// DefaultOptions returns Options with DefaultCourseMaxMarks.
func DefaultOptions() Options {
	return Options{CourseMaxMarks: DefaultCourseMaxMarks}
}

type courseKey struct {
	name     string
	semester int
}

type specializationBucket struct {
	summary     model.SpecializationSummary
	courses     []*model.CourseSummary
	courseIndex map[courseKey]*model.CourseSummary
}

// ComputeSpecializationAnalytics folds students into per-specialization,
// per-course and per-student rollups. Students without a specialization are skipped.
// All rankings are best-first; equal percentages keep input order.
func ComputeSpecializationAnalytics(students []model.Student, opts Options) []model.SpecializationSummary {
	var buckets []*specializationBucket
	index := make(map[string]*specializationBucket)

	for _, st := range students {
		if st.Specialization == "" {
			continue
		}

		b, ok := index[st.Specialization]
		if !ok {
			b = &specializationBucket{
				summary: model.SpecializationSummary{
					Specialization: st.Specialization,
					Students:       []model.StudentSummary{},
				},
				courseIndex: make(map[courseKey]*model.CourseSummary),
			}
			index[st.Specialization] = b
			buckets = append(buckets, b)
		}

		b.summary.TotalStudents++

		var studentTotal, studentMax float64
		for _, sem := range st.Semesters {
			for _, c := range sem.Courses {
				marks := finite(c.Total())
				studentTotal += marks
				studentMax += opts.CourseMaxMarks

				key := courseKey{name: c.Name, semester: sem.Semester}
				cs, ok := b.courseIndex[key]
				if !ok {
					cs = &model.CourseSummary{
						CourseName: c.Name,
						Semester:   sem.Semester,
						Students:   []model.CourseResult{},
					}
					b.courseIndex[key] = cs
					b.courses = append(b.courses, cs)
				}
				cs.TotalMarks += marks
				cs.MaxMarks += opts.CourseMaxMarks
				cs.StudentCount++
				cs.Students = append(cs.Students, model.CourseResult{
					StudentID:  st.ID,
					Name:       st.Name,
					Marks:      marks,
					CT:         c.CT,
					Mid:        c.Mid,
					Final:      c.Final,
					Percentage: Percentage(marks, opts.CourseMaxMarks),
				})
			}
		}

		studentTotal = finite(studentTotal)
		b.summary.TotalMarks += studentTotal
		b.summary.TotalMaxMarks += studentMax
		b.summary.Students = append(b.summary.Students, model.StudentSummary{
			ID:         st.ID,
			Name:       st.Name,
			Age:        st.Age,
			Gender:     st.Gender,
			TotalMarks: studentTotal,
			MaxMarks:   studentMax,
			Percentage: Percentage(studentTotal, studentMax),
			Semesters:  st.Semesters,
		})
	}

	result := make([]model.SpecializationSummary, 0, len(buckets))
	for _, b := range buckets {
		s := b.summary
		s.TotalMarks = finite(s.TotalMarks)
		s.AveragePercentage = Percentage(s.TotalMarks, s.TotalMaxMarks)

		s.Courses = make([]model.CourseSummary, 0, len(b.courses))
		for _, cs := range b.courses {
			c := *cs
			c.TotalMarks = finite(c.TotalMarks)
			c.AveragePercentage = Percentage(c.TotalMarks, c.MaxMarks)
			sort.SliceStable(c.Students, func(i, j int) bool {
				return c.Students[i].Percentage > c.Students[j].Percentage
			})
			s.Courses = append(s.Courses, c)
		}
		sort.SliceStable(s.Courses, func(i, j int) bool {
			return s.Courses[i].AveragePercentage > s.Courses[j].AveragePercentage
		})
		sort.SliceStable(s.Students, func(i, j int) bool {
			return s.Students[i].Percentage > s.Students[j].Percentage
		})

		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AveragePercentage > result[j].AveragePercentage
	})
	return result
}

// Percentage returns earned/max*100, or 0 when max is not positive or the
// result is not finite.
func Percentage(earned, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return finite(earned / max * 100)
}

// finite maps NaN and infinities to 0. Totals must stay JSON encodable.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
