package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/response"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/validator"
)

// StudentHandler handles student listing and detail endpoints.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students?upload=&page=&per_page=
// Lists students with pagination, optionally filtered by upload.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q model.ListStudentsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var uploadID *uuid.UUID
	if q.Upload != "" {
		id := uuid.MustParse(q.Upload) // validated by the uuid binding
		uploadID = &id
	}

	students, pagination, err := h.studentService.ListStudents(c.Request.Context(), uploadID, q.Page, q.PerPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// GetStudentDetails godoc
// GET /api/v1/students/:id/details
// Returns per-semester, per-course and overall percentages of one student.
func (h *StudentHandler) GetStudentDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.studentService.GetDetails(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
