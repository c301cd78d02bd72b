package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/gradesheet"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/storage"
)

// Workbook extensions excelize can open.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// IngestService turns uploaded gradesheets into stored student records.
type IngestService struct {
	uploads  UploadStore
	archive  storage.Storage
	purge    PurgeQueue
	maxBytes int64
	log      zerolog.Logger
	now      func() time.Time
}

// NewIngestService creates a new IngestService.
func NewIngestService(uploads UploadStore, archive storage.Storage, purge PurgeQueue, maxBytes int64, log zerolog.Logger) *IngestService {
	return &IngestService{
		uploads:  uploads,
		archive:  archive,
		purge:    purge,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "ingest_service").Logger(),
		now:      time.Now,
	}
}

// ValidateFile checks the extension and size of an incoming file before it is read.
func (s *IngestService) ValidateFile(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: .xlsx, .xlsm)", ErrUnsupportedFileType, ext)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.maxBytes)
	}
	return nil
}

// Ingest parses the workbook, archives it and stores the upload with all of its
// students. Either every student is stored or none is.
func (s *IngestService) Ingest(ctx context.Context, data []byte, originalName, college string) (*model.IngestResult, error) {
	college = strings.TrimSpace(college)
	if college == "" {
		return nil, ErrCollegeRequired
	}
	if err := s.ValidateFile(originalName, int64(len(data))); err != nil {
		return nil, err
	}

	rows, err := gradesheet.ReadRows(data)
	if err != nil {
		return nil, err
	}

	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, gradesheet.ParseRow(row))
	}

	id := uuid.New()
	upload := &model.Upload{
		ID:              id,
		FileName:        StoredFileName(id, originalName),
		OriginalName:    filepath.Base(originalName),
		UploadDate:      s.now().UTC(),
		College:         college,
		Specializations: gradesheet.DistinctSpecializations(students),
	}

	if err := s.archive.Upload(ctx, upload.FileName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("archive spreadsheet: %w", err)
	}

	if err := s.uploads.CreateWithStudents(ctx, upload, students); err != nil {
		// Nothing references the archived file now.
		if qerr := s.purge.Enqueue(context.WithoutCancel(ctx), upload.FileName); qerr != nil {
			s.log.Error().Err(qerr).Str("file", upload.FileName).Msg("Failed to enqueue purge of orphaned spreadsheet")
		}
		return nil, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().
		Str("upload_id", id.String()).
		Str("college", college).
		Int("records", upload.RecordCount).
		Msg("Spreadsheet ingested")

	return &model.IngestResult{UploadID: id, RecordCount: upload.RecordCount}, nil
}

// StoredFileName derives the archive key of an upload: "<id>-<slug>.<ext>".
func StoredFileName(id uuid.UUID, originalName string) string {
	base := filepath.Base(originalName)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "gradesheet"
	}
	return id.String() + "-" + name + ext
}
