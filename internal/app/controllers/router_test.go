package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okanv/uniregistry/internal/app/controllers"
	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/routes"
	"github.com/okanv/uniregistry/internal/app/services"
	"github.com/okanv/uniregistry/internal/middleware"
	"github.com/okanv/uniregistry/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// In-memory repository stand-ins backing the wired router under test.

type memStudentRepo struct {
	students map[int64]*models.Student
	byCourse map[int64][]int64
	nextID   int64
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{students: make(map[int64]*models.Student), byCourse: make(map[int64][]int64), nextID: 1}
}

func (f *memStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.StudentID = f.nextID
	// Staggered so newest-first ordering is deterministic
	student.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.nextID++
	copied := *student
	f.students[student.StudentID] = &copied
	return nil
}

func (f *memStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *memStudentRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	s, _ := f.GetByEmail(ctx, email)
	return s != nil, nil
}

func (f *memStudentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.students[id]
	return ok, nil
}

func (f *memStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	result := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		copied := *s
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *memStudentRepo) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	result := make([]*models.Student, 0)
	for _, id := range f.byCourse[courseID] {
		if s, ok := f.students[id]; ok {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memCourseRepo struct {
	courses   map[int64]*models.Course
	byStudent map[int64][]int64
	nextID    int64
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: make(map[int64]*models.Course), byStudent: make(map[int64][]int64), nextID: 1}
}

func (f *memCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.CourseID = f.nextID
	course.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.nextID++
	copied := *course
	f.courses[course.CourseID] = &copied
	return nil
}

func (f *memCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *memCourseRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	for _, c := range f.courses {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *memCourseRepo) GetAll(ctx context.Context) ([]*models.Course, error) {
	result := make([]*models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *memCourseRepo) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	result := make([]*models.Course, 0)
	for _, id := range f.byStudent[studentID] {
		if c, ok := f.courses[id]; ok {
			copied := *c
			result = append(result, &copied)
		}
	}
	return result, nil
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type memEnrollmentRepo struct {
	enrollments map[enrollmentKey]time.Time
	studentRepo *memStudentRepo
	courseRepo  *memCourseRepo
}

func newMemEnrollmentRepo(studentRepo *memStudentRepo, courseRepo *memCourseRepo) *memEnrollmentRepo {
	return &memEnrollmentRepo{
		enrollments: make(map[enrollmentKey]time.Time),
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

func (f *memEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.EnrollmentDate = time.Now()
	key := enrollmentKey{enrollment.StudentID, enrollment.CourseID}
	f.enrollments[key] = enrollment.EnrollmentDate
	f.studentRepo.byCourse[enrollment.CourseID] = append(f.studentRepo.byCourse[enrollment.CourseID], enrollment.StudentID)
	f.courseRepo.byStudent[enrollment.StudentID] = append(f.courseRepo.byStudent[enrollment.StudentID], enrollment.CourseID)
	return nil
}

func (f *memEnrollmentRepo) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	_, ok := f.enrollments[enrollmentKey{studentID, courseID}]
	return ok, nil
}

func (f *memEnrollmentRepo) CountByCourseID(ctx context.Context, courseID int64) (int, error) {
	count := 0
	for key := range f.enrollments {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

type memReportRepo struct {
	courseRepo     *memCourseRepo
	enrollmentRepo *memEnrollmentRepo
}

func (f *memReportRepo) CapacityStats(ctx context.Context) ([]*models.CapacityStat, error) {
	stats := make([]*models.CapacityStat, 0, len(f.courseRepo.courses))
	for _, c := range f.courseRepo.courses {
		enrolled, _ := f.enrollmentRepo.CountByCourseID(ctx, c.CourseID)
		stats = append(stats, &models.CapacityStat{
			Code:        c.Code,
			Name:        c.Name,
			Enrolled:    enrolled,
			MaxStudents: c.MaxStudents,
			CapacityPct: float64(enrolled) / float64(c.MaxStudents) * 100,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].CapacityPct > stats[j].CapacityPct })
	return stats, nil
}

type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *memUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *memUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetByEmail(ctx, email)
	return u != nil, nil
}

// newTestRouter wires the full route table over in-memory repositories.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	studentRepo := newMemStudentRepo()
	courseRepo := newMemCourseRepo()
	enrollmentRepo := newMemEnrollmentRepo(studentRepo, courseRepo)
	reportRepo := &memReportRepo{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo}
	userRepo := newMemUserRepo()

	log := zerolog.Nop()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uniregistry-test",
	})

	studentService := services.NewStudentService(studentRepo, log)
	courseService := services.NewCourseService(courseRepo, log)
	enrollmentService := services.NewEnrollmentService(studentRepo, courseRepo, enrollmentRepo, log)
	reportService := services.NewReportService(reportRepo)
	authService := services.NewAuthService(userRepo, jwtService, log)

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewStudentController(studentService, enrollmentService),
		controllers.NewCourseController(courseService, enrollmentService),
		controllers.NewEnrollmentController(enrollmentService),
		controllers.NewReportController(reportService),
		controllers.NewAuthController(authService, log),
		middleware.NewAuthMiddleware(jwtService),
		nil,
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	require.False(t, body.Success)
	return body.Error.Message
}

func createStudent(t *testing.T, router *gin.Engine, firstName, lastName, email string) int64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/students/",
		`{"first_name":"`+firstName+`","last_name":"`+lastName+`","email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var student models.Student
	decodeBody(t, rec, &student)
	return student.StudentID
}

func createCourse(t *testing.T, router *gin.Engine, code, name string, credits, maxStudents int) int64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/courses/",
		`{"code":"`+code+`","name":"`+name+`","credits":`+itoa(credits)+`,"max_students":`+itoa(maxStudents)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var course models.Course
	decodeBody(t, rec, &course)
	return course.CourseID
}

func enroll(t *testing.T, router *gin.Engine, studentID, courseID int64) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPost, "/enrollments/",
		`{"student_id":`+itoa64(studentID)+`,"course_id":`+itoa64(courseID)+`}`)
}

func itoa(n int) string { return strconv.Itoa(n) }

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }
