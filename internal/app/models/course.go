package models

import "time"

// Course represents a course with a fixed enrollment capacity.
type Course struct {
	CourseID    int64     `json:"course_id" db:"course_id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Credits     int       `json:"credits" db:"credits"`
	MaxStudents int       `json:"max_students" db:"max_students"` // Capacity bound
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
