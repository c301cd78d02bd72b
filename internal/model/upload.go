package model

import (
	"time"

	"github.com/google/uuid"
)

// Upload is the metadata of one spreadsheet ingestion.
type Upload struct {
	ID              uuid.UUID `json:"id"`
	FileName        string    `json:"file_name"`
	OriginalName    string    `json:"original_name"`
	UploadDate      time.Time `json:"upload_date"`
	College         string    `json:"college"`
	RecordCount     int       `json:"record_count"`
	Specializations []string  `json:"specializations"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IngestUploadRequest is the multipart form of a spreadsheet upload.
// The file itself is read from the "excel" form field.
type IngestUploadRequest struct {
	College string `form:"college" binding:"required,max=200"`
}

// IngestResult is returned after a spreadsheet has been ingested.
type IngestResult struct {
	UploadID    uuid.UUID `json:"upload_id"`
	RecordCount int       `json:"record_count"`
}
