package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okanv/uniregistry/internal/app/models"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error)
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student. The id and creation timestamp are assigned
// by the store and written back into the given model.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING student_id, created_at
	`

	err := r.db.QueryRow(ctx, query, student.FirstName, student.LastName, student.Email).
		Scan(&student.StudentID, &student.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByEmail retrieves a student by email, or nil if no such student exists
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `
		SELECT student_id, first_name, last_name, email, created_at
		FROM students
		WHERE email = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, email).Scan(
		&student.StudentID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by email: %w", err)
	}

	return &student, nil
}

// EmailExists checks whether a student with the given email already exists
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student email existence: %w", err)
	}

	return exists, nil
}

// Exists checks whether a student with the given id exists
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all students, newest first
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT student_id, first_name, last_name, email, created_at
		FROM students
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetByCourseID retrieves the roster of a course, ordered by last then first name
func (r *StudentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	query := `
		SELECT s.student_id, s.first_name, s.last_name, s.email, s.created_at
		FROM students s
		JOIN enrollments e ON s.student_id = e.student_id
		WHERE e.course_id = $1
		ORDER BY s.last_name, s.first_name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

func scanStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.StudentID,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
