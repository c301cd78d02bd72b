package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyscope/studyscope-backend/internal/model"
)

// DashboardRepository handles dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
// Soft-deleted uploads and their students are not counted.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (model.DashboardCounts, error) {
	var c model.DashboardCounts
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM uploads WHERE is_active),
			(SELECT COUNT(*) FROM students s JOIN uploads u ON u.id = s.upload_id WHERE u.is_active),
			(SELECT COUNT(DISTINCT college) FROM uploads WHERE is_active),
			(SELECT COUNT(DISTINCT s.specialization) FROM students s JOIN uploads u ON u.id = s.upload_id
			 WHERE u.is_active AND s.specialization <> '')`,
	).Scan(&c.TotalUploads, &c.TotalStudents, &c.TotalColleges, &c.TotalSpecializations)
	return c, err
}
