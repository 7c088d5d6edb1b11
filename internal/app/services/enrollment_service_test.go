package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *fakeStudentRepo, *fakeCourseRepo, *fakeEnrollmentRepo) {
	t.Helper()
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	enrollmentRepo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(studentRepo, courseRepo, enrollmentRepo, zerolog.Nop())
	return svc, studentRepo, courseRepo, enrollmentRepo
}

func addStudent(t *testing.T, repo *fakeStudentRepo, email string) *models.Student {
	t.Helper()
	student := &models.Student{FirstName: "Ada", LastName: "Lovelace", Email: email}
	require.NoError(t, repo.Create(context.Background(), student))
	return student
}

func addCourse(t *testing.T, repo *fakeCourseRepo, code string, maxStudents int) *models.Course {
	t.Helper()
	course := &models.Course{Code: code, Name: "Course " + code, Credits: 3, MaxStudents: maxStudents}
	require.NoError(t, repo.Create(context.Background(), course))
	return course
}

func TestEnrollSuccess(t *testing.T) {
	svc, studentRepo, courseRepo, enrollmentRepo := newEnrollmentFixture(t)
	student := addStudent(t, studentRepo, "ada@example.com")
	course := addCourse(t, courseRepo, "CS101", 30)

	enrollment, err := svc.Enroll(context.Background(), student.StudentID, course.CourseID)

	require.NoError(t, err)
	assert.Equal(t, student.StudentID, enrollment.StudentID)
	assert.Equal(t, course.CourseID, enrollment.CourseID)
	assert.False(t, enrollment.EnrollmentDate.IsZero())

	count, err := enrollmentRepo.CountByCourseID(context.Background(), course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnrollStudentNotFound(t *testing.T) {
	svc, _, courseRepo, enrollmentRepo := newEnrollmentFixture(t)
	course := addCourse(t, courseRepo, "CS101", 30)

	_, err := svc.Enroll(context.Background(), 42, course.CourseID)

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Empty(t, enrollmentRepo.enrollments)
}

func TestEnrollCourseNotFound(t *testing.T) {
	svc, studentRepo, _, enrollmentRepo := newEnrollmentFixture(t)
	student := addStudent(t, studentRepo, "ada@example.com")

	_, err := svc.Enroll(context.Background(), student.StudentID, 42)

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Empty(t, enrollmentRepo.enrollments)
}

func TestEnrollCapacityBoundary(t *testing.T) {
	svc, studentRepo, courseRepo, enrollmentRepo := newEnrollmentFixture(t)
	course := addCourse(t, courseRepo, "CS101", 2)

	var students []*models.Student
	for i := 0; i < 3; i++ {
		students = append(students, addStudent(t, studentRepo, fmt.Sprintf("s%d@example.com", i)))
	}

	// Enrolling exactly max_students distinct students succeeds
	for i := 0; i < 2; i++ {
		_, err := svc.Enroll(context.Background(), students[i].StudentID, course.CourseID)
		require.NoError(t, err)
	}

	// The (max_students + 1)-th attempt fails and leaves the count unchanged
	_, err := svc.Enroll(context.Background(), students[2].StudentID, course.CourseID)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)

	count, err := enrollmentRepo.CountByCourseID(context.Background(), course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEnrollDuplicate(t *testing.T) {
	svc, studentRepo, courseRepo, enrollmentRepo := newEnrollmentFixture(t)
	student := addStudent(t, studentRepo, "ada@example.com")
	course := addCourse(t, courseRepo, "CS101", 30)

	_, err := svc.Enroll(context.Background(), student.StudentID, course.CourseID)
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), student.StudentID, course.CourseID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	count, err := enrollmentRepo.CountByCourseID(context.Background(), course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnrollFullCourseReportsCapacityBeforeDuplicate(t *testing.T) {
	// A student already enrolled in a course that has since filled up must
	// get the capacity error: the capacity check runs first.
	svc, studentRepo, courseRepo, _ := newEnrollmentFixture(t)
	course := addCourse(t, courseRepo, "CS101", 1)
	student := addStudent(t, studentRepo, "ada@example.com")

	_, err := svc.Enroll(context.Background(), student.StudentID, course.CourseID)
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), student.StudentID, course.CourseID)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollInvalidIDs(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture(t)

	_, err := svc.Enroll(context.Background(), 0, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Enroll(context.Background(), 1, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEnrollConcurrentConstraintFallbacks(t *testing.T) {
	// Rows deleted between the existence checks and the insert surface as
	// constraint violations; each maps back to the matching domain error.
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
	}{
		{"student row gone", &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_student_id_fkey"}, apperrors.ErrStudentNotFound},
		{"course row gone", &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_course_id_fkey"}, apperrors.ErrCourseNotFound},
		{"enrollment raced in", &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_pkey"}, apperrors.ErrAlreadyEnrolled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, studentRepo, courseRepo, enrollmentRepo := newEnrollmentFixture(t)
			student := addStudent(t, studentRepo, "ada@example.com")
			course := addCourse(t, courseRepo, "CS101", 30)
			enrollmentRepo.createErr = tt.pgErr

			_, err := svc.Enroll(context.Background(), student.StudentID, course.CourseID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetStudentCourses(t *testing.T) {
	svc, _, courseRepo, _ := newEnrollmentFixture(t)
	courseRepo.byStudent[7] = []*models.Course{
		{CourseID: 1, Code: "CS101", Name: "Algorithms"},
		{CourseID: 2, Code: "CS102", Name: "Databases"},
	}

	courses, err := svc.GetStudentCourses(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].Name)
}

func TestGetCourseStudents(t *testing.T) {
	svc, studentRepo, _, _ := newEnrollmentFixture(t)
	studentRepo.byCourse[3] = []*models.Student{
		{StudentID: 1, FirstName: "Ada", LastName: "Lovelace"},
		{StudentID: 2, FirstName: "Alan", LastName: "Turing"},
	}

	students, err := svc.GetCourseStudents(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Lovelace", students[0].LastName)
}
