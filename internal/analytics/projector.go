package analytics

import (
	"sort"

	"github.com/studyscope/studyscope-backend/internal/model"
)

// ComputeStudentStatistics projects one student into per-course, per-semester
// and overall percentages. Semesters are chronological; courses are best-first.
func ComputeStudentStatistics(st model.Student, opts Options) model.StudentStatistics {
	stats := model.PerformanceStats{
		Semesters: make([]model.SemesterStats, 0, len(st.Semesters)),
	}

	for _, sem := range st.Semesters {
		ss := model.SemesterStats{
			Semester: sem.Semester,
			Courses:  make([]model.CourseStats, 0, len(sem.Courses)),
		}

		for _, c := range sem.Courses {
			total := finite(c.Total())
			ss.TotalMarks += total
			ss.MaxMarks += opts.CourseMaxMarks

			ss.Courses = append(ss.Courses, model.CourseStats{
				Name:       c.Name,
				CT:         c.CT,
				Mid:        c.Mid,
				Final:      c.Final,
				Total:      total,
				Percentage: Percentage(total, opts.CourseMaxMarks),
			})
		}

		ss.TotalMarks = finite(ss.TotalMarks)
		ss.Percentage = Percentage(ss.TotalMarks, ss.MaxMarks)
		sort.SliceStable(ss.Courses, func(i, j int) bool {
			return ss.Courses[i].Percentage > ss.Courses[j].Percentage
		})

		stats.TotalMarks += ss.TotalMarks
		stats.TotalMaxMarks += ss.MaxMarks
		stats.Semesters = append(stats.Semesters, ss)
	}

	stats.TotalMarks = finite(stats.TotalMarks)
	stats.OverallPercentage = Percentage(stats.TotalMarks, stats.TotalMaxMarks)
	sort.SliceStable(stats.Semesters, func(i, j int) bool {
		return stats.Semesters[i].Semester < stats.Semesters[j].Semester
	})

	return model.StudentStatistics{
		Student: model.StudentProfile{
			ID:             st.ID,
			Name:           st.Name,
			Age:            st.Age,
			Gender:         st.Gender,
			Specialization: st.Specialization,
		},
		Statistics: stats,
	}
}
