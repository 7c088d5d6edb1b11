package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okanv/uniregistry/internal/app/controllers"
	"github.com/okanv/uniregistry/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	reportController *controllers.ReportController,
	authController *controllers.AuthController,
	authMiddleware *middleware.AuthMiddleware,
	dbPool *pgxpool.Pool,
) {
	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "University API connected to PostgreSQL"})
	})

	// Health check endpoint with a store round trip
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Student routes
	students := router.Group("/students")
	{
		students.POST("/", studentController.CreateStudent)
		students.GET("/", studentController.ListStudents)
		students.GET("/:id/courses", studentController.GetStudentCourses)
	}

	// Course routes
	courses := router.Group("/courses")
	{
		courses.POST("/", courseController.CreateCourse)
		courses.GET("/", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.GET("/:id/students", courseController.GetCourseStudents)
	}

	// Enrollment routes
	enrollments := router.Group("/enrollments")
	{
		enrollments.POST("/", enrollmentController.CreateEnrollment)
	}

	// Reporting routes
	report := router.Group("/report")
	{
		report.GET("/enrollment-stats", reportController.EnrollmentStats)
	}

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		authenticated := auth.Group("")
		authenticated.Use(authMiddleware.JWTAuth())
		{
			authenticated.GET("/me", authController.Me)
		}
	}
}
