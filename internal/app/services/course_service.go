package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/repositories"
	"github.com/okanv/uniregistry/internal/pkg/apperrors"
	"github.com/okanv/uniregistry/internal/pkg/dberrors"
	"github.com/rs/zerolog"
)

// CourseService handles course-related operations
type CourseService struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(code, name string, credits, maxStudents int) error {
	if strings.TrimSpace(code) == "" {
		return apperrors.NewValidationError("code cannot be empty")
	}
	if len(code) > 10 {
		return apperrors.NewValidationError("code must be at most 10 characters")
	}

	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("name must be at most 100 characters")
	}

	if credits <= 0 {
		return apperrors.NewValidationError("credits must be positive")
	}

	if maxStudents <= 0 {
		return apperrors.NewValidationError("max_students must be positive")
	}

	return nil
}

// CreateCourse creates a new course after checking code uniqueness
func (s *CourseService) CreateCourse(ctx context.Context, code, name string, credits, maxStudents int) (*models.Course, error) {
	if err := s.validateCourse(code, name, credits, maxStudents); err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.CodeExists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseCodeExists
	}

	course := &models.Course{
		Code:        code,
		Name:        name,
		Credits:     credits,
		MaxStudents: maxStudents,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return nil, apperrors.ErrCourseCodeExists
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseId", course.CourseID).Str("code", course.Code).Msg("Course created")

	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	return course, nil
}

// GetAllCourses retrieves all courses, newest first
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	return courses, nil
}
