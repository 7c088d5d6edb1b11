// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/models/dto"
	"github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/middleware"
)

// StudentController handles student-related endpoints
type StudentController struct {
	studentService    *services.StudentService
	enrollmentService *services.EnrollmentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, enrollmentService *services.EnrollmentService) *StudentController {
	return &StudentController{
		studentService:    studentService,
		enrollmentService: enrollmentService,
	}
}

// CreateStudent handles POST /students/
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// ListStudents handles GET /students/
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if students == nil {
		students = []*models.Student{}
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentCourses handles GET /students/:id/courses
func (c *StudentController) GetStudentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.GetStudentCourses(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if courses == nil {
		courses = []*models.Course{}
	}
	ctx.JSON(http.StatusOK, courses)
}
