package dto

// CreateCourseRequest represents the payload for creating a course
type CreateCourseRequest struct {
	Code        string `json:"code" binding:"required,max=10"`
	Name        string `json:"name" binding:"required,max=100"`
	Credits     int    `json:"credits" binding:"required,min=1"`
	MaxStudents int    `json:"max_students" binding:"required,min=1"`
}
