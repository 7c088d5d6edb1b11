package services

import (
	"context"
	"fmt"

	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/repositories"
	"github.com/okanv/uniregistry/internal/pkg/apperrors"
	"github.com/okanv/uniregistry/internal/pkg/dberrors"
	"github.com/rs/zerolog"
)

// EnrollmentService handles the enrollment workflow and the
// student/course relationship queries.
type EnrollmentService struct {
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// Enroll links a student to a course. Checks run in a fixed order and
// short-circuit on the first failure: student existence, course existence,
// capacity, duplicate enrollment. The capacity rule lives here because the
// store cannot express it as a column constraint; the duplicate check gives a
// precise error instead of a generic constraint violation. The check-then-act
// sequence is not serialized against concurrent writers, so capacity can be
// transiently exceeded under concurrent load.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("student_id must be positive")
	}
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("course_id must be positive")
	}

	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if !studentExists {
		return nil, apperrors.ErrStudentNotFound
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	enrolled, err := s.enrollmentRepo.CountByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}
	if enrolled >= course.MaxStudents {
		return nil, apperrors.ErrCourseFull
	}

	exists, err := s.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		// The composite primary key closes the race the duplicate check leaves open
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyConstraintError(err, "enrollments_student_id_fkey") {
			return nil, apperrors.ErrStudentNotFound
		}
		if dberrors.IsForeignKeyConstraintError(err, "enrollments_course_id_fkey") {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("courseId", courseID).
		Int("enrolled", enrolled+1).
		Int("maxStudents", course.MaxStudents).
		Msg("Enrollment created")

	return enrollment, nil
}

// GetStudentCourses retrieves the courses a student is enrolled in, by name
func (s *EnrollmentService) GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	courses, err := s.courseRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student courses: %w", err)
	}

	return courses, nil
}

// GetCourseStudents retrieves the roster of a course, by last then first name
func (s *EnrollmentService) GetCourseStudents(ctx context.Context, courseID int64) ([]*models.Student, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	students, err := s.studentRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course students: %w", err)
	}

	return students, nil
}
