package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/analytics"
	"github.com/studyscope/studyscope-backend/internal/model"
)

// filterAll disables a query filter.
const filterAll = "all"

// AnalyticsService computes specialization analytics over stored students.
type AnalyticsService struct {
	uploads    UploadStore
	students   StudentStore
	opts       analytics.Options
	genderMode model.GenderMatchMode
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(uploads UploadStore, students StudentStore, opts analytics.Options, genderMode model.GenderMatchMode) *AnalyticsService {
	return &AnalyticsService{
		uploads:    uploads,
		students:   students,
		opts:       opts,
		genderMode: genderMode,
	}
}

// GetSpecializationAnalytics filters students by upload and gender, then folds
// them into specialization rollups. An unknown upload is ErrUploadNotFound.
func (s *AnalyticsService) GetSpecializationAnalytics(ctx context.Context, q model.AnalyticsQuery) ([]model.SpecializationSummary, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}

	if filter.UploadID != nil {
		if _, err := s.uploads.GetByID(ctx, *filter.UploadID); err != nil {
			return nil, err
		}
	}

	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return analytics.ComputeSpecializationAnalytics(students, s.opts), nil
}

func (s *AnalyticsService) buildFilter(q model.AnalyticsQuery) (model.StudentFilter, error) {
	filter := model.StudentFilter{GenderMode: s.genderMode}

	if upload := strings.TrimSpace(q.Upload); upload != "" && !strings.EqualFold(upload, filterAll) {
		id, err := uuid.Parse(upload)
		if err != nil {
			return filter, fmt.Errorf("%w: %q", ErrInvalidUploadFilter, upload)
		}
		filter.UploadID = &id
	}

	if gender := strings.TrimSpace(q.Gender); !strings.EqualFold(gender, filterAll) {
		filter.Gender = gender
	}

	return filter, nil
}
