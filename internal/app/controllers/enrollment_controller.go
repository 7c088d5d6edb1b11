package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okanv/uniregistry/internal/app/models/dto"
	"github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/middleware"
)

// EnrollmentController handles enrollment creation
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// CreateEnrollment handles POST /enrollments/
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollment)
}
