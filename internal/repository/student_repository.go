package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyscope/studyscope-backend/internal/model"
)

const studentColumns = `s.id, s.name, s.age, s.gender, s.specialization, s.upload_id, s.semesters, s.created_at`

// StudentRepository handles student record access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// copyStudents bulk inserts students for one upload. IDs are assigned when unset.
func copyStudents(ctx context.Context, tx pgx.Tx, uploadID uuid.UUID, students []model.Student) (int64, error) {
	if len(students) == 0 {
		return 0, nil
	}

	return tx.CopyFrom(
		ctx,
		pgx.Identifier{"students"},
		[]string{"id", "upload_id", "sheet_row", "name", "age", "gender", "specialization", "semesters"},
		pgx.CopyFromSlice(len(students), func(i int) ([]interface{}, error) {
			s := &students[i]
			if s.ID == uuid.Nil {
				s.ID = uuid.New()
			}
			s.UploadID = uploadID
			if s.Semesters == nil {
				s.Semesters = []model.Semester{}
			}
			return []interface{}{s.ID, uploadID, i + 1, s.Name, s.Age, s.Gender, s.Specialization, s.Semesters}, nil
		}),
	)
}

// GetByID retrieves a student by ID, including students of soft-deleted uploads.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	s, err := scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students s WHERE s.id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns every student of active uploads matching the filter, in sheet order.
func (r *StudentRepository) List(ctx context.Context, f model.StudentFilter) ([]model.Student, error) {
	where, args := studentFilterClause(f)

	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+`
		 FROM students s JOIN uploads u ON u.id = s.upload_id
		 WHERE `+where+`
		 ORDER BY u.upload_date, s.upload_id, s.sheet_row`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStudents(rows)
}

// ListPaginated returns one page of students of active uploads and the total count.
func (r *StudentRepository) ListPaginated(ctx context.Context, f model.StudentFilter, limit, offset int) ([]model.Student, int, error) {
	where, args := studentFilterClause(f)

	// 1. Get total count
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students s JOIN uploads u ON u.id = s.upload_id WHERE `+where,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	argIdx := len(args) + 1
	query := `SELECT ` + studentColumns + `
		 FROM students s JOIN uploads u ON u.id = s.upload_id
		 WHERE ` + where + `
		 ORDER BY u.upload_date DESC, s.upload_id, s.sheet_row
		 LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	return students, total, err
}

// studentFilterClause builds the WHERE clause shared by the list queries.
func studentFilterClause(f model.StudentFilter) (string, []interface{}) {
	conds := []string{"u.is_active"}
	var args []interface{}

	if f.UploadID != nil {
		args = append(args, *f.UploadID)
		conds = append(conds, "s.upload_id = $"+strconv.Itoa(len(args)))
	}

	if f.Gender != "" {
		if f.GenderMode == model.GenderMatchExact {
			args = append(args, f.Gender)
			conds = append(conds, "lower(s.gender) = lower($"+strconv.Itoa(len(args))+")")
		} else {
			args = append(args, "%"+escapeLike(f.Gender)+"%")
			conds = append(conds, "s.gender ILIKE $"+strconv.Itoa(len(args))+` ESCAPE '\'`)
		}
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func collectStudents(rows pgx.Rows) ([]model.Student, error) {
	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Age, &s.Gender, &s.Specialization, &s.UploadID, &s.Semesters, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Semesters == nil {
		s.Semesters = []model.Semester{}
	}
	return s, nil
}
