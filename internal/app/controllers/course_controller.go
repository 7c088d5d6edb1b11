package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/models/dto"
	"github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/middleware"
)

// CourseController handles course-related endpoints
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// CreateCourse handles POST /courses/
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req.Code, req.Name, req.Credits, req.MaxStudents)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// ListCourses handles GET /courses/
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if courses == nil {
		courses = []*models.Course{}
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourseByID handles GET /courses/:id
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// GetCourseStudents handles GET /courses/:id/students
func (c *CourseController) GetCourseStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.enrollmentService.GetCourseStudents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if students == nil {
		students = []*models.Student{}
	}
	ctx.JSON(http.StatusOK, students)
}
