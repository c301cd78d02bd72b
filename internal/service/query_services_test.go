package service

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/analytics"
	"github.com/studyscope/studyscope-backend/internal/gradesheet"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/repository"
	"github.com/studyscope/studyscope-backend/internal/storage"
)

// seeded ingests two sheets a day apart and returns the fixture and both upload ids.
func seeded(t *testing.T) (*ingestFixture, uuid.UUID, uuid.UUID) {
	t.Helper()
	f := newIngestFixture(t)
	ctx := context.Background()

	first, err := f.svc.Ingest(ctx, sampleSheet(t), "first.xlsx", "North")
	if err != nil {
		t.Fatalf("ingest first: %v", err)
	}

	f.svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	second, err := f.svc.Ingest(ctx, buildWorkbook(t, [][]interface{}{
		{"Student Name", "Gender", "Specialization", "Sem1_Course1_CT"},
		{"Zed", "M", "ME", 30},
	}), "second.xlsx", "South")
	if err != nil {
		t.Fatalf("ingest second: %v", err)
	}

	return f, first.UploadID, second.UploadID
}

func TestAnalyticsServiceFilters(t *testing.T) {
	f, first, _ := seeded(t)
	svc := NewAnalyticsService(f.store, f.store.Students(), analytics.DefaultOptions(), model.GenderMatchContains)
	ctx := context.Background()

	all, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: "all", Gender: "all"})
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("specializations = %d, want 3", len(all))
	}

	byUpload, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: first.String()})
	if err != nil {
		t.Fatalf("by upload: %v", err)
	}
	if len(byUpload) != 2 || byUpload[0].Specialization != "CS" {
		t.Errorf("by upload = %+v", byUpload)
	}
	// CS: (255 + 270) / 600
	if math.Abs(byUpload[0].AveragePercentage-87.5) > 1e-9 {
		t.Errorf("CS average = %v, want 87.5", byUpload[0].AveragePercentage)
	}

	// "male" is a substring of "female" in contains mode.
	male, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: first.String(), Gender: "male"})
	if err != nil {
		t.Fatalf("male: %v", err)
	}
	total := 0
	for _, s := range male {
		total += s.TotalStudents
	}
	if total != 3 {
		t.Errorf("contains-mode male students = %d, want 3", total)
	}

	svc.genderMode = model.GenderMatchExact
	exact, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: first.String(), Gender: "MALE"})
	if err != nil {
		t.Fatalf("exact: %v", err)
	}
	if len(exact) != 1 || exact[0].Specialization != "EE" {
		t.Errorf("exact-mode male = %+v", exact)
	}
}

func TestAnalyticsServiceErrors(t *testing.T) {
	f, _, _ := seeded(t)
	svc := NewAnalyticsService(f.store, f.store.Students(), analytics.DefaultOptions(), model.GenderMatchContains)
	ctx := context.Background()

	if _, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: "not-a-uuid"}); !errors.Is(err, ErrInvalidUploadFilter) {
		t.Errorf("malformed upload err = %v", err)
	}
	if _, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Upload: uuid.NewString()}); !errors.Is(err, repository.ErrUploadNotFound) {
		t.Errorf("unknown upload err = %v", err)
	}

	got, err := svc.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{Gender: "nobody"})
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("no matches = %v, %v; want empty non-nil", got, err)
	}
}

func TestUploadServiceDeleteHidesStudents(t *testing.T) {
	f, first, second := seeded(t)
	uploads := NewUploadService(f.store, f.archive, f.queue, zerolog.Nop())
	students := NewStudentService(f.store.Students(), analytics.DefaultOptions())
	ctx := context.Background()

	list, err := uploads.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != second {
		t.Fatalf("List = %v, %v; want newest first", list, err)
	}

	pageBefore, _, _ := students.ListStudents(ctx, &first, 1, 10)
	victim := pageBefore[0]

	if err := uploads.Delete(ctx, first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.queue.keys) != 1 || f.queue.keys[0] != first.String()+"-first.xlsx" {
		t.Errorf("purge queue = %v", f.queue.keys)
	}
	if err := uploads.Delete(ctx, first); !errors.Is(err, repository.ErrUploadNotFound) {
		t.Errorf("second Delete = %v, want ErrUploadNotFound", err)
	}
	if _, err := uploads.GetByID(ctx, first); !errors.Is(err, repository.ErrUploadNotFound) {
		t.Errorf("GetByID deleted = %v", err)
	}

	page, pagination, err := students.ListStudents(ctx, nil, 1, 10)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(page) != 1 || page[0].Name != "Zed" || pagination.TotalItems != 1 {
		t.Errorf("students after delete = %+v", page)
	}

	// Details still resolve for students of a soft-deleted upload.
	if _, err := students.GetDetails(ctx, victim.ID); err != nil {
		t.Errorf("GetDetails after delete: %v", err)
	}
}

func TestUploadServiceOpenFile(t *testing.T) {
	f, first, second := seeded(t)
	uploads := NewUploadService(f.store, f.archive, f.queue, zerolog.Nop())
	ctx := context.Background()

	u, rc, err := uploads.OpenFile(ctx, first)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if u.OriginalName != "first.xlsx" {
		t.Errorf("OriginalName = %q", u.OriginalName)
	}
	rows, err := gradesheet.ReadRows(data)
	if err != nil || len(rows) != 3 {
		t.Errorf("archived workbook rows = %d, %v; want 3", len(rows), err)
	}

	if err := uploads.Delete(ctx, first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := uploads.OpenFile(ctx, first); !errors.Is(err, repository.ErrUploadNotFound) {
		t.Errorf("OpenFile deleted = %v, want ErrUploadNotFound", err)
	}

	stored, _ := f.store.GetByID(ctx, second)
	if err := f.archive.Delete(ctx, stored.FileName); err != nil {
		t.Fatalf("archive.Delete: %v", err)
	}
	if _, _, err := uploads.OpenFile(ctx, second); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("OpenFile missing archive = %v, want storage.ErrNotFound", err)
	}
}

func TestStudentServicePaginationAndDetails(t *testing.T) {
	f, first, _ := seeded(t)
	svc := NewStudentService(f.store.Students(), analytics.DefaultOptions())
	ctx := context.Background()

	page, p, err := svc.ListStudents(ctx, &first, 2, 2)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(page) != 1 || page[0].Name != "Mei" {
		t.Errorf("page 2 = %+v", page)
	}
	if p.Page != 2 || p.PerPage != 2 || p.TotalItems != 3 || p.TotalPages != 2 {
		t.Errorf("pagination = %+v", p)
	}

	_, p, _ = svc.ListStudents(ctx, nil, 0, 1000)
	if p.Page != 1 || p.PerPage != 100 {
		t.Errorf("clamped pagination = %+v", p)
	}

	asha, _, _ := svc.ListStudents(ctx, &first, 1, 1)
	stats, err := svc.GetDetails(ctx, asha[0].ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if stats.Student.Name != "Asha" || math.Abs(stats.Statistics.OverallPercentage-85) > 1e-9 {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := svc.GetDetails(ctx, uuid.New()); !errors.Is(err, repository.ErrStudentNotFound) {
		t.Errorf("unknown student err = %v", err)
	}
}

func TestDashboardService(t *testing.T) {
	f, first, second := seeded(t)
	svc := NewDashboardService(f.store, f.store)

	d, err := svc.GetDashboardData(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardData: %v", err)
	}
	want := model.DashboardCounts{TotalUploads: 2, TotalStudents: 4, TotalColleges: 2, TotalSpecializations: 3}
	if d.DashboardCounts != want {
		t.Errorf("counts = %+v, want %+v", d.DashboardCounts, want)
	}
	if len(d.RecentUploads) != 2 || d.RecentUploads[0].ID != second || d.RecentUploads[1].ID != first {
		t.Errorf("recent uploads = %+v", d.RecentUploads)
	}
}
