package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/response"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/validator"
)

// AnalyticsHandler handles specialization analytics endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSpecializationAnalytics godoc
// GET /api/v1/analytics/specializations?upload=&gender=
// Returns specialization → course → student rollups. "all" disables a filter.
func (h *AnalyticsHandler) GetSpecializationAnalytics(c *gin.Context) {
	var q model.AnalyticsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summaries, err := h.analyticsService.GetSpecializationAnalytics(c.Request.Context(), q)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summaries)
}
