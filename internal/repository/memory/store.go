// Package memory is an in-process record store with the same semantics as the
// PostgreSQL repositories. It backs dry-run imports and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/repository"
)

// Store holds uploads and students in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	uploads  []*model.Upload
	students []model.Student
	now      func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{now: time.Now}
}

// CreateWithStudents stores the upload and its students atomically.
func (s *Store) CreateWithStudents(_ context.Context, u *model.Upload, students []model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	u.RecordCount = len(students)
	u.IsActive = true
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Specializations == nil {
		u.Specializations = []string{}
	}

	cp := *u
	s.uploads = append(s.uploads, &cp)
	for i := range students {
		st := &students[i]
		if st.ID == uuid.Nil {
			st.ID = uuid.New()
		}
		st.UploadID = u.ID
		st.CreatedAt = now
		if st.Semesters == nil {
			st.Semesters = []model.Semester{}
		}
		s.students = append(s.students, *st)
	}
	return nil
}

func (s *Store) upload(id uuid.UUID) *model.Upload {
	for _, u := range s.uploads {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// GetByID retrieves an active upload.
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*model.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.upload(id); u != nil && u.IsActive {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUploadNotFound
}

// ListActive returns active uploads, most recent first. limit <= 0 means no limit.
func (s *Store) ListActive(_ context.Context, limit int) ([]model.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listActive(limit), nil
}

func (s *Store) listActive(limit int) []model.Upload {
	out := []model.Upload{}
	for _, u := range s.uploads {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SoftDelete marks an active upload inactive and returns its stored file name.
func (s *Store) SoftDelete(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.upload(id)
	if u == nil || !u.IsActive {
		return "", repository.ErrUploadNotFound
	}
	u.IsActive = false
	u.UpdatedAt = s.now().UTC()
	return u.FileName, nil
}

// GetSummaryCounts counts active uploads and their students.
func (s *Store) GetSummaryCounts(_ context.Context) (model.DashboardCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := s.listActive(0)
	students := s.list(model.StudentFilter{})

	colleges := make(map[string]struct{})
	for _, u := range active {
		colleges[u.College] = struct{}{}
	}
	specs := make(map[string]struct{})
	for _, st := range students {
		if st.Specialization != "" {
			specs[st.Specialization] = struct{}{}
		}
	}

	return model.DashboardCounts{
		TotalUploads:         len(active),
		TotalStudents:        len(students),
		TotalColleges:        len(colleges),
		TotalSpecializations: len(specs),
	}, nil
}

// list returns students of active uploads matching f, in insertion order.
func (s *Store) list(f model.StudentFilter) []model.Student {
	out := []model.Student{}
	for _, st := range s.students {
		if u := s.upload(st.UploadID); u == nil || !u.IsActive {
			continue
		}
		if f.UploadID != nil && st.UploadID != *f.UploadID {
			continue
		}
		if !f.GenderMode.Matches(st.Gender, f.Gender) {
			continue
		}
		out = append(out, st)
	}
	s.sortByUpload(out, false)
	return out
}

// sortByUpload orders students by upload date, then upload id, keeping sheet
// order within an upload. newestFirst reverses the date order only.
func (s *Store) sortByUpload(students []model.Student, newestFirst bool) {
	sort.SliceStable(students, func(i, j int) bool {
		a, b := s.upload(students[i].UploadID), s.upload(students[j].UploadID)
		if !a.UploadDate.Equal(b.UploadDate) {
			if newestFirst {
				return a.UploadDate.After(b.UploadDate)
			}
			return a.UploadDate.Before(b.UploadDate)
		}
		return a.ID.String() < b.ID.String()
	})
}

// Students returns the student-record view of the store.
func (s *Store) Students() *StudentView {
	return &StudentView{s: s}
}

// StudentView exposes the student queries of a Store.
type StudentView struct {
	s *Store
}

// GetByID retrieves a student by ID, including students of soft-deleted uploads.
func (v *StudentView) GetByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	for _, st := range v.s.students {
		if st.ID == id {
			cp := st
			return &cp, nil
		}
	}
	return nil, repository.ErrStudentNotFound
}

// List returns every student of active uploads matching the filter.
func (v *StudentView) List(_ context.Context, f model.StudentFilter) ([]model.Student, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	return v.s.list(f), nil
}

// ListPaginated returns one page of students, newest upload first, and the total count.
func (v *StudentView) ListPaginated(_ context.Context, f model.StudentFilter, limit, offset int) ([]model.Student, int, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	all := v.s.list(f)
	v.s.sortByUpload(all, true)
	if offset >= len(all) {
		return []model.Student{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}
