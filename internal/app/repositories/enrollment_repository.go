package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okanv/uniregistry/internal/app/models"
)

// IEnrollmentRepository defines the interface for enrollment-related database operations
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	CountByCourseID(ctx context.Context, courseID int64) (int, error)
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create inserts an enrollment row and writes back the server-assigned date.
// The composite primary key and foreign keys reject duplicates and dangling
// references even if the workflow checks raced.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING enrollment_date
	`

	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.EnrollmentDate)
	if err != nil {
		return err
	}

	return nil
}

// Exists checks whether the (student, course) pair already has an enrollment row
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// CountByCourseID counts current enrollments for a course
func (r *EnrollmentRepository) CountByCourseID(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE course_id = $1`,
		courseID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}
