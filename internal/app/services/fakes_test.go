package services

import (
	"context"
	"sort"
	"time"

	"github.com/okanv/uniregistry/internal/app/models"
)

// In-memory repository fakes used across the service tests.

type fakeStudentRepo struct {
	students  map[int64]*models.Student
	byCourse  map[int64][]*models.Student
	nextID    int64
	createErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students: make(map[int64]*models.Student),
		byCourse: make(map[int64][]*models.Student),
	}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	student.StudentID = f.nextID
	// Staggered so newest-first ordering is deterministic
	student.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	copied := *student
	f.students[student.StudentID] = &copied
	return nil
}

func (f *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, s := range f.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.students[id]
	return ok, nil
}

func (f *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	var all []*models.Student
	for _, s := range f.students {
		copied := *s
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (f *fakeStudentRepo) GetByCourseID(_ context.Context, courseID int64) ([]*models.Student, error) {
	return f.byCourse[courseID], nil
}

type fakeCourseRepo struct {
	courses   map[int64]*models.Course
	byStudent map[int64][]*models.Course
	nextID    int64
	createErr error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:   make(map[int64]*models.Course),
		byStudent: make(map[int64][]*models.Course),
	}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	course.CourseID = f.nextID
	course.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	copied := *course
	f.courses[course.CourseID] = &copied
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) CodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range f.courses {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	var all []*models.Course
	for _, c := range f.courses {
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (f *fakeCourseRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Course, error) {
	return f.byStudent[studentID], nil
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentRepo struct {
	enrollments map[enrollmentKey]*models.Enrollment
	createErr   error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		enrollments: make(map[enrollmentKey]*models.Enrollment),
	}
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	enrollment.EnrollmentDate = time.Now()
	copied := *enrollment
	f.enrollments[enrollmentKey{enrollment.StudentID, enrollment.CourseID}] = &copied
	return nil
}

func (f *fakeEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	_, ok := f.enrollments[enrollmentKey{studentID, courseID}]
	return ok, nil
}

func (f *fakeEnrollmentRepo) CountByCourseID(_ context.Context, courseID int64) (int, error) {
	count := 0
	for key := range f.enrollments {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users     map[int64]*models.User
	nextID    int64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[int64]*models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
