package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/storage"
)

// UploadService handles upload metadata business logic.
type UploadService struct {
	uploads UploadStore
	archive storage.Storage
	purge   PurgeQueue
	log     zerolog.Logger
}

// NewUploadService creates a new UploadService.
func NewUploadService(uploads UploadStore, archive storage.Storage, purge PurgeQueue, log zerolog.Logger) *UploadService {
	return &UploadService{
		uploads: uploads,
		archive: archive,
		purge:   purge,
		log:     log.With().Str("component", "upload_service").Logger(),
	}
}

// List returns active uploads, most recent first.
func (s *UploadService) List(ctx context.Context) ([]model.Upload, error) {
	return s.uploads.ListActive(ctx, 0)
}

// GetByID retrieves an active upload.
func (s *UploadService) GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	return s.uploads.GetByID(ctx, id)
}

// OpenFile returns an active upload with a reader over its archived
// spreadsheet. The caller closes the reader.
func (s *UploadService) OpenFile(ctx context.Context, id uuid.UUID) (*model.Upload, io.ReadCloser, error) {
	u, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.archive.Download(ctx, u.FileName)
	if err != nil {
		return nil, nil, err
	}
	return u, rc, nil
}

// Delete soft-deletes an upload and schedules its spreadsheet for purge.
// Its students disappear from lists and analytics but stay resolvable by id.
func (s *UploadService) Delete(ctx context.Context, id uuid.UUID) error {
	fileName, err := s.uploads.SoftDelete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.purge.Enqueue(ctx, fileName); err != nil {
		s.log.Warn().Err(err).Str("file", fileName).Msg("Failed to enqueue spreadsheet purge")
	}
	return nil
}
