package dto

// CreateStudentRequest represents the payload for creating a student
type CreateStudentRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,max=100"`
}
