package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/response"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/validator"
)

// multipartOverhead is the slack allowed above the file size limit for the
// other form fields and part headers.
const multipartOverhead = 1 << 20

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsmContentType = "application/vnd.ms-excel.sheet.macroEnabled.12"
)

// UploadHandler handles spreadsheet upload endpoints.
type UploadHandler struct {
	ingestService  *service.IngestService
	uploadService  *service.UploadService
	maxUploadBytes int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(ingestService *service.IngestService, uploadService *service.UploadService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		ingestService:  ingestService,
		uploadService:  uploadService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Ingest godoc
// POST /api/v1/uploads
// Accepts a multipart gradesheet ("excel") with its "college" and stores every row.
func (h *UploadHandler) Ingest(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	var req model.IngestUploadRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	file, header, err := c.Request.FormFile("excel")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if err := h.ingestService.ValidateFile(header.Filename, header.Size); err != nil {
		failFromError(c, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		failFromError(c, err)
		return
	}

	result, err := h.ingestService.Ingest(c.Request.Context(), data, header.Filename, req.College)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListUploads godoc
// GET /api/v1/uploads
// Lists active uploads, most recent first.
func (h *UploadHandler) ListUploads(c *gin.Context) {
	uploads, err := h.uploadService.List(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"uploads": uploads})
}

// GetUpload godoc
// GET /api/v1/uploads/:id
func (h *UploadHandler) GetUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	upload, err := h.uploadService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, upload)
}

// DownloadUpload godoc
// GET /api/v1/uploads/:id/file
// Streams the archived spreadsheet of an active upload.
func (h *UploadHandler) DownloadUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	upload, rc, err := h.uploadService.OpenFile(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	defer rc.Close()

	contentType := xlsxContentType
	if strings.EqualFold(filepath.Ext(upload.OriginalName), ".xlsm") {
		contentType = xlsmContentType
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": upload.OriginalName}),
	})
}

// DeleteUpload godoc
// DELETE /api/v1/uploads/:id
// Soft-deletes an upload; its students drop out of lists and analytics.
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "upload deleted successfully"})
}
