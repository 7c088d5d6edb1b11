package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okanv/uniregistry/internal/app/models"
)

// ICourseRepository defines the interface for course-related database operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course and writes back the assigned id and timestamp
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, credits, max_students)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id, created_at
	`

	err := r.db.QueryRow(ctx, query, course.Code, course.Name, course.Credits, course.MaxStudents).
		Scan(&course.CourseID, &course.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a course by id, or nil if no such course exists
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT course_id, code, name, credits, max_students, created_at
		FROM courses
		WHERE course_id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.CourseID,
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.MaxStudents,
		&course.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// CodeExists checks whether a course with the given code already exists
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course code existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all courses, newest first
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT course_id, code, name, credits, max_students, created_at
		FROM courses
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// GetByStudentID retrieves the courses a student is enrolled in, by name ascending
func (r *CourseRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	query := `
		SELECT c.course_id, c.code, c.name, c.credits, c.max_students, c.created_at
		FROM courses c
		JOIN enrollments e ON c.course_id = e.course_id
		WHERE e.student_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.CourseID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.MaxStudents,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
