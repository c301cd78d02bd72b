package analytics

import (
	"encoding/json"
	"testing"

	"github.com/studyscope/studyscope-backend/internal/model"
)

func TestComputeStudentStatistics(t *testing.T) {
	age := 21.0
	st := student("A", "CS",
		sem(2, course("Course1", 30, 30, 30), course("Course2", 100, 100, 100)),
		sem(1, course("Course1", 80, 85, 90)),
	)
	st.Age = &age

	got := ComputeStudentStatistics(st, DefaultOptions())

	if got.Student.ID != st.ID || got.Student.Name != "A" || got.Student.Specialization != "CS" {
		t.Errorf("profile = %+v", got.Student)
	}
	if got.Student.Age == nil || *got.Student.Age != 21 {
		t.Errorf("age = %v", got.Student.Age)
	}

	stats := got.Statistics
	if len(stats.Semesters) != 2 || stats.Semesters[0].Semester != 1 || stats.Semesters[1].Semester != 2 {
		t.Fatalf("semesters = %+v", stats.Semesters)
	}

	s1 := stats.Semesters[0]
	if s1.TotalMarks != 255 || s1.MaxMarks != 300 || !almostEqual(s1.Percentage, 85) {
		t.Errorf("sem1 = %+v", s1)
	}
	if c := s1.Courses[0]; c.Total != 255 || !almostEqual(c.Percentage, 85) {
		t.Errorf("sem1 course = %+v", c)
	}

	s2 := stats.Semesters[1]
	if s2.Courses[0].Name != "Course2" || s2.Courses[1].Name != "Course1" {
		t.Errorf("sem2 courses not best-first: %s, %s", s2.Courses[0].Name, s2.Courses[1].Name)
	}

	wantTotal := 255.0 + 90 + 300
	if stats.TotalMarks != wantTotal || stats.TotalMaxMarks != 900 {
		t.Errorf("totals = %v / %v", stats.TotalMarks, stats.TotalMaxMarks)
	}
	if !almostEqual(stats.OverallPercentage, wantTotal/900*100) {
		t.Errorf("overall = %v", stats.OverallPercentage)
	}
}

func TestComputeStudentStatisticsNoSemesters(t *testing.T) {
	got := ComputeStudentStatistics(student("A", "CS"), DefaultOptions())

	if got.Statistics.OverallPercentage != 0 || got.Statistics.TotalMaxMarks != 0 {
		t.Errorf("stats = %+v", got.Statistics)
	}
	if got.Statistics.Semesters == nil || len(got.Statistics.Semesters) != 0 {
		t.Errorf("Semesters = %v, want empty non-nil", got.Statistics.Semesters)
	}
}

func TestComputeStudentStatisticsEmptySemester(t *testing.T) {
	st := student("A", "CS", model.Semester{Semester: 1})

	got := ComputeStudentStatistics(st, DefaultOptions())

	s := got.Statistics.Semesters[0]
	if s.Percentage != 0 || s.Courses == nil || len(s.Courses) != 0 {
		t.Errorf("semester = %+v", s)
	}
}

func TestComputeStudentStatisticsTiesKeepInputOrder(t *testing.T) {
	st := student("A", "CS", sem(1,
		course("Course3", 10, 10, 10),
		course("Course1", 10, 10, 10),
		course("Course2", 10, 10, 10),
	))

	got := ComputeStudentStatistics(st, DefaultOptions())

	courses := got.Statistics.Semesters[0].Courses
	if courses[0].Name != "Course3" || courses[1].Name != "Course1" || courses[2].Name != "Course2" {
		t.Errorf("order = %s %s %s", courses[0].Name, courses[1].Name, courses[2].Name)
	}
}

func TestComputeStudentStatisticsMatchesAggregator(t *testing.T) {
	st := student("A", "CS", sem(1, course("Course1", 70, 60, 50)), sem(2, course("Course4", 20, 40, 60)))

	detail := ComputeStudentStatistics(st, DefaultOptions())
	rollup := ComputeSpecializationAnalytics([]model.Student{st}, DefaultOptions())

	if !almostEqual(detail.Statistics.OverallPercentage, rollup[0].Students[0].Percentage) {
		t.Errorf("detail %v != rollup %v", detail.Statistics.OverallPercentage, rollup[0].Students[0].Percentage)
	}
}

func TestComputeStudentStatisticsOverflowingMarksStayEncodable(t *testing.T) {
	st := student("A", "CS", sem(1, course("Course1", 1e308, 1e308, 0), course("Course2", 60, 60, 60)))

	got := ComputeStudentStatistics(st, DefaultOptions())

	if _, err := json.Marshal(got); err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !almostEqual(got.Statistics.TotalMarks, 180) {
		t.Errorf("TotalMarks = %v, want 180", got.Statistics.TotalMarks)
	}
	if !almostEqual(got.Statistics.OverallPercentage, 30) {
		t.Errorf("OverallPercentage = %v, want 30", got.Statistics.OverallPercentage)
	}
}
