package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyscope/studyscope-backend/internal/model"
)

var (
	ErrUploadNotFound  = errors.New("upload not found")
	ErrStudentNotFound = errors.New("student not found")
)

const uploadColumns = `id, file_name, original_name, upload_date, college, record_count, specializations, is_active, created_at, updated_at`

// UploadRepository handles upload metadata access.
type UploadRepository struct {
	pool *pgxpool.Pool
}

// NewUploadRepository creates a new UploadRepository.
func NewUploadRepository(pool *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{pool: pool}
}

// CreateWithStudents inserts the upload and all of its students in one transaction.
// RecordCount is set to len(students) before the insert.
func (r *UploadRepository) CreateWithStudents(ctx context.Context, u *model.Upload, students []model.Student) error {
	u.RecordCount = len(students)
	if u.Specializations == nil {
		u.Specializations = []string{}
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO uploads (id, file_name, original_name, upload_date, college, record_count, specializations)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING is_active, created_at, updated_at`,
			u.ID, u.FileName, u.OriginalName, u.UploadDate, u.College, u.RecordCount, u.Specializations,
		).Scan(&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert upload: %w", err)
		}

		n, err := copyStudents(ctx, tx, u.ID, students)
		if err != nil {
			return fmt.Errorf("copy students: %w", err)
		}
		if int(n) != len(students) {
			return fmt.Errorf("copy students: wrote %d of %d rows", n, len(students))
		}
		return nil
	})
}

// GetByID retrieves an active upload.
func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	u, err := scanUpload(r.pool.QueryRow(ctx,
		`SELECT `+uploadColumns+` FROM uploads WHERE id = $1 AND is_active`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListActive returns active uploads, most recent first. limit <= 0 means no limit.
func (r *UploadRepository) ListActive(ctx context.Context, limit int) ([]model.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE is_active ORDER BY upload_date DESC, created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uploads := []model.Upload{}
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *u)
	}
	return uploads, rows.Err()
}

// SoftDelete marks an active upload inactive and returns its stored file name.
func (r *UploadRepository) SoftDelete(ctx context.Context, id uuid.UUID) (string, error) {
	var fileName string
	err := r.pool.QueryRow(ctx,
		`UPDATE uploads SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND is_active
		 RETURNING file_name`, id,
	).Scan(&fileName)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUploadNotFound
	}
	return fileName, err
}

func scanUpload(row pgx.Row) (*model.Upload, error) {
	u := &model.Upload{}
	err := row.Scan(&u.ID, &u.FileName, &u.OriginalName, &u.UploadDate, &u.College,
		&u.RecordCount, &u.Specializations, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
