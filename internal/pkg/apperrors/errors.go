package apperrors

import "errors"

// Common errors
var (
	ErrValidationFailed = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Student errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// Course errors
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseCodeExists = errors.New("course code already exists")
)

// Enrollment errors
var (
	ErrCourseFull      = errors.New("course is full")
	ErrAlreadyEnrolled = errors.New("student already enrolled in this course")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure carrying a reason string
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}
