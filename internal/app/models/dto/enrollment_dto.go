package dto

// CreateEnrollmentRequest represents the payload for enrolling a student in a course
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"student_id" binding:"required,min=1"`
	CourseID  int64 `json:"course_id" binding:"required,min=1"`
}
