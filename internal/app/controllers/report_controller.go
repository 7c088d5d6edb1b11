package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okanv/uniregistry/internal/app/models/dto"
	"github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/middleware"
)

// ReportController handles reporting endpoints
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// EnrollmentStats handles GET /report/enrollment-stats
func (c *ReportController) EnrollmentStats(ctx *gin.Context) {
	stats, err := c.reportService.CapacityReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := make([]dto.EnrollmentStatResponse, 0, len(stats))
	for _, stat := range stats {
		response = append(response, dto.NewEnrollmentStatResponse(stat))
	}

	ctx.JSON(http.StatusOK, response)
}
