package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/analytics"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/response"
)

// StudentService handles student listing and detail projection.
type StudentService struct {
	students StudentStore
	opts     analytics.Options
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, opts analytics.Options) *StudentService {
	return &StudentService{students: students, opts: opts}
}

// ListStudents retrieves students of active uploads with pagination and an optional upload filter.
func (s *StudentService) ListStudents(ctx context.Context, uploadID *uuid.UUID, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total, err := s.students.ListPaginated(ctx, model.StudentFilter{UploadID: uploadID}, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if students == nil {
		students = []model.Student{}
	}

	return students, response.NewPagination(page, perPage, total), nil
}

// GetDetails projects one student's per-semester and overall statistics.
func (s *StudentService) GetDetails(ctx context.Context, id uuid.UUID) (*model.StudentStatistics, error) {
	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := analytics.ComputeStudentStatistics(*st, s.opts)
	return &stats, nil
}
