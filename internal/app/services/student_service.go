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

// StudentService handles student-related operations
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// validateStudent validates student data before database operations
func (s *StudentService) validateStudent(firstName, lastName, email string) error {
	if strings.TrimSpace(firstName) == "" {
		return apperrors.NewValidationError("first name cannot be empty")
	}
	if len(firstName) > 50 {
		return apperrors.NewValidationError("first name must be at most 50 characters")
	}

	if strings.TrimSpace(lastName) == "" {
		return apperrors.NewValidationError("last name cannot be empty")
	}
	if len(lastName) > 50 {
		return apperrors.NewValidationError("last name must be at most 50 characters")
	}

	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if len(email) > 100 {
		return apperrors.NewValidationError("email must be at most 100 characters")
	}

	return nil
}

// CreateStudent creates a new student after checking email uniqueness
func (s *StudentService) CreateStudent(ctx context.Context, firstName, lastName, email string) (*models.Student, error) {
	if err := s.validateStudent(firstName, lastName, email); err != nil {
		return nil, err
	}

	exists, err := s.studentRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}

	student := &models.Student{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		// A concurrent registration may still hit the unique constraint
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	s.logger.Info().Int64("studentId", student.StudentID).Str("email", student.Email).Msg("Student created")

	return student, nil
}

// GetAllStudents retrieves all students, newest first
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	return students, nil
}
