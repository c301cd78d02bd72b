package analytics

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/model"
)

func student(name, spec string, sems ...model.Semester) model.Student {
	return model.Student{
		ID:             uuid.New(),
		Name:           name,
		Gender:         "M",
		Specialization: spec,
		Semesters:      sems,
	}
}

func sem(n int, courses ...model.Course) model.Semester {
	return model.Semester{Semester: n, Courses: courses}
}

func course(name string, ct, mid, final float64) model.Course {
	return model.Course{Name: name, CT: ct, Mid: mid, Final: final}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSpecializationAnalyticsSingleStudent(t *testing.T) {
	students := []model.Student{
		student("A", "CS", sem(1, course("Course1", 80, 85, 90))),
	}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	if len(got) != 1 {
		t.Fatalf("summaries = %d, want 1", len(got))
	}
	cs := got[0]
	if cs.Specialization != "CS" || cs.TotalStudents != 1 {
		t.Errorf("summary = %+v", cs)
	}
	if !almostEqual(cs.AveragePercentage, 85) {
		t.Errorf("AveragePercentage = %v, want 85", cs.AveragePercentage)
	}
	if len(cs.Courses) != 1 || cs.Courses[0].CourseName != "Course1" || cs.Courses[0].Semester != 1 {
		t.Fatalf("courses = %+v", cs.Courses)
	}
	if r := cs.Courses[0].Students[0]; r.Marks != 255 || !almostEqual(r.Percentage, 85) {
		t.Errorf("course result = %+v", r)
	}
	if s := cs.Students[0]; s.TotalMarks != 255 || s.MaxMarks != 300 || !almostEqual(s.Percentage, 85) {
		t.Errorf("student summary = %+v", s)
	}
}

func TestComputeSpecializationAnalyticsOrdering(t *testing.T) {
	students := []model.Student{
		student("low", "EE", sem(1, course("Course1", 10, 10, 10))),
		student("mid", "CS", sem(1, course("Course1", 50, 50, 50), course("Course2", 90, 90, 90))),
		student("high", "CS", sem(1, course("Course1", 100, 100, 100))),
		student("none", ""),
	}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	if len(got) != 2 {
		t.Fatalf("summaries = %d, want 2 (empty specialization skipped)", len(got))
	}
	if got[0].Specialization != "CS" || got[1].Specialization != "EE" {
		t.Fatalf("order = %s, %s", got[0].Specialization, got[1].Specialization)
	}

	for _, s := range got {
		for i := 1; i < len(s.Students); i++ {
			if s.Students[i-1].Percentage < s.Students[i].Percentage {
				t.Errorf("%s students not descending at %d", s.Specialization, i)
			}
		}
		for i := 1; i < len(s.Courses); i++ {
			if s.Courses[i-1].AveragePercentage < s.Courses[i].AveragePercentage {
				t.Errorf("%s courses not descending at %d", s.Specialization, i)
			}
		}
		for _, c := range s.Courses {
			for i := 1; i < len(c.Students); i++ {
				if c.Students[i-1].Percentage < c.Students[i].Percentage {
					t.Errorf("%s/%s results not descending at %d", s.Specialization, c.CourseName, i)
				}
			}
		}
	}

	cs := got[0]
	if cs.Students[0].Name != "high" {
		t.Errorf("top student = %s, want high", cs.Students[0].Name)
	}
	if cs.Courses[0].CourseName != "Course2" {
		t.Errorf("top course = %s, want Course2", cs.Courses[0].CourseName)
	}
	// Course1 holds both CS students; Course2 only one.
	for _, c := range cs.Courses {
		want := 1
		if c.CourseName == "Course1" {
			want = 2
		}
		if c.StudentCount != want || len(c.Students) != want {
			t.Errorf("%s student count = %d, want %d", c.CourseName, c.StudentCount, want)
		}
	}
}

func TestComputeSpecializationAnalyticsCourseKeyIncludesSemester(t *testing.T) {
	students := []model.Student{
		student("A", "CS",
			sem(1, course("Course1", 10, 10, 10)),
			sem(2, course("Course1", 20, 20, 20)),
		),
	}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	if len(got[0].Courses) != 2 {
		t.Fatalf("courses = %d, want 2", len(got[0].Courses))
	}
	if got[0].Courses[0].Semester != 2 || got[0].Courses[1].Semester != 1 {
		t.Errorf("course semesters = %d, %d", got[0].Courses[0].Semester, got[0].Courses[1].Semester)
	}
}

func TestComputeSpecializationAnalyticsTiesKeepInputOrder(t *testing.T) {
	students := []model.Student{
		student("first", "CS", sem(1, course("Course1", 50, 50, 50))),
		student("second", "CS", sem(1, course("Course1", 50, 50, 50))),
		student("third", "CS", sem(1, course("Course1", 50, 50, 50))),
	}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	names := []string{}
	for _, s := range got[0].Students {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"first", "second", "third"}) {
		t.Errorf("students = %v", names)
	}

	names = names[:0]
	for _, r := range got[0].Courses[0].Students {
		names = append(names, r.Name)
	}
	if !reflect.DeepEqual(names, []string{"first", "second", "third"}) {
		t.Errorf("course results = %v", names)
	}
}

func TestComputeSpecializationAnalyticsNoCourses(t *testing.T) {
	students := []model.Student{student("A", "CS")}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	s := got[0]
	if s.TotalStudents != 1 || s.AveragePercentage != 0 || s.TotalMaxMarks != 0 {
		t.Errorf("summary = %+v", s)
	}
	if s.Courses == nil || len(s.Courses) != 0 {
		t.Errorf("Courses = %v, want empty non-nil", s.Courses)
	}
	if s.Students[0].Percentage != 0 {
		t.Errorf("student percentage = %v, want 0", s.Students[0].Percentage)
	}
}

func TestComputeSpecializationAnalyticsEmptyInput(t *testing.T) {
	got := ComputeSpecializationAnalytics(nil, DefaultOptions())
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil", got)
	}
}

func TestComputeSpecializationAnalyticsZeroMaxMarks(t *testing.T) {
	students := []model.Student{student("A", "CS", sem(1, course("Course1", 10, 10, 10)))}

	got := ComputeSpecializationAnalytics(students, Options{CourseMaxMarks: 0})

	s := got[0]
	if s.AveragePercentage != 0 || s.Courses[0].AveragePercentage != 0 || s.Students[0].Percentage != 0 {
		t.Errorf("expected zero percentages, got %+v", s)
	}
}

func TestComputeSpecializationAnalyticsIsDeterministic(t *testing.T) {
	students := []model.Student{
		student("A", "CS", sem(1, course("Course1", 70, 60, 50)), sem(2, course("Course3", 90, 80, 70))),
		student("B", "EE", sem(1, course("Course1", 40, 50, 60))),
		student("C", "CS", sem(1, course("Course2", 95, 95, 95))),
	}

	first := ComputeSpecializationAnalytics(students, DefaultOptions())
	second := ComputeSpecializationAnalytics(students, DefaultOptions())

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated computation differs")
	}
}

func TestComputeSpecializationAnalyticsPercentBounds(t *testing.T) {
	students := []model.Student{
		student("A", "CS", sem(1, course("Course1", 100, 100, 100), course("Course2", 0, 0, 0))),
		student("B", "CS", sem(3, course("Course1", 33, 66, 99))),
	}

	for _, s := range ComputeSpecializationAnalytics(students, DefaultOptions()) {
		check := func(what string, p float64) {
			if p < 0 || p > 100 {
				t.Errorf("%s = %v, out of [0,100]", what, p)
			}
		}
		check("specialization", s.AveragePercentage)
		for _, c := range s.Courses {
			check("course", c.AveragePercentage)
			for _, r := range c.Students {
				check("course result", r.Percentage)
			}
		}
		for _, st := range s.Students {
			check("student", st.Percentage)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		earned, max, want float64
	}{
		{255, 300, 85},
		{0, 300, 0},
		{10, 0, 0},
		{10, -5, 0},
		{math.Inf(1), 300, 0},
		{math.MaxFloat64, 1e-300, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.earned, tt.max); !almostEqual(got, tt.want) {
			t.Errorf("Percentage(%v, %v) = %v, want %v", tt.earned, tt.max, got, tt.want)
		}
	}
}

func TestComputeSpecializationAnalyticsOverflowingMarksStayEncodable(t *testing.T) {
	students := []model.Student{
		student("Huge", "CS", sem(1, course("Course1", 1e308, 1e308, 0))),
		student("B", "CS", sem(1, course("Course1", 80, 85, 90))),
	}

	got := ComputeSpecializationAnalytics(students, DefaultOptions())

	if _, err := json.Marshal(got); err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	cs := got[0]
	if !almostEqual(cs.TotalMarks, 255) {
		t.Errorf("TotalMarks = %v, want 255", cs.TotalMarks)
	}
	if !almostEqual(cs.AveragePercentage, 42.5) {
		t.Errorf("AveragePercentage = %v, want 42.5", cs.AveragePercentage)
	}
	for _, st := range cs.Students {
		if math.IsInf(st.TotalMarks, 0) || math.IsInf(st.Percentage, 0) {
			t.Errorf("student %s has non-finite totals: %+v", st.Name, st)
		}
	}
}
