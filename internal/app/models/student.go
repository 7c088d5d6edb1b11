package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	StudentID int64     `json:"student_id" db:"student_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Server-assigned at insertion
}
