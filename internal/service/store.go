package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/model"
)

// Sentinel errors for request validation.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrCollegeRequired     = errors.New("college is required")
	ErrInvalidUploadFilter = errors.New("invalid upload filter")
)

// UploadStore persists upload metadata. Implemented by repository.UploadRepository.
type UploadStore interface {
	CreateWithStudents(ctx context.Context, u *model.Upload, students []model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error)
	ListActive(ctx context.Context, limit int) ([]model.Upload, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (string, error)
}

// StudentStore reads student records. Implemented by repository.StudentRepository.
type StudentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	List(ctx context.Context, f model.StudentFilter) ([]model.Student, error)
	ListPaginated(ctx context.Context, f model.StudentFilter, limit, offset int) ([]model.Student, int, error)
}

// DashboardStore reads dashboard counts. Implemented by repository.DashboardRepository.
type DashboardStore interface {
	GetSummaryCounts(ctx context.Context) (model.DashboardCounts, error)
}

// PurgeQueue schedules archived spreadsheets for deletion. Implemented by worker.PurgeQueue.
type PurgeQueue interface {
	Enqueue(ctx context.Context, key string) error
}
