package service

import (
	"context"

	"github.com/studyscope/studyscope-backend/internal/model"
)

const recentUploadsLimit = 5

// DashboardService handles dashboard business logic.
type DashboardService struct {
	counts  DashboardStore
	uploads UploadStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(counts DashboardStore, uploads UploadStore) *DashboardService {
	return &DashboardService{counts: counts, uploads: uploads}
}

// GetDashboardData returns the headline counts and the most recent uploads.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*model.DashboardSummary, error) {
	counts, err := s.counts.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.uploads.ListActive(ctx, recentUploadsLimit)
	if err != nil {
		return nil, err
	}

	return &model.DashboardSummary{
		DashboardCounts: counts,
		RecentUploads:   recent,
	}, nil
}
