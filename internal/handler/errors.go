package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/gradesheet"
	"github.com/studyscope/studyscope-backend/internal/repository"
	"github.com/studyscope/studyscope-backend/internal/response"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/storage"
)

// failFromError maps a service error onto the response envelope.
// Unmapped errors are attached to the context for the request logger and reported as 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollegeRequired):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"college": "college is a required field"})
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, gradesheet.ErrInvalidSpreadsheet):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSpreadsheet)
	case errors.Is(err, gradesheet.ErrEmptySheet):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptySpreadsheet)
	case errors.Is(err, service.ErrInvalidUploadFilter):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, repository.ErrUploadNotFound), errors.Is(err, repository.ErrStudentNotFound),
		errors.Is(err, storage.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseIDParam reads a UUID path parameter, responding 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
