package models

import "time"

// Enrollment links a student to a course. Identity is the composite
// (student_id, course_id) pair; rows are never updated or deleted.
type Enrollment struct {
	StudentID      int64     `json:"student_id" db:"student_id"`
	CourseID       int64     `json:"course_id" db:"course_id"`
	EnrollmentDate time.Time `json:"enrollment_date" db:"enrollment_date"`
}

// CapacityStat is one row of the per-course capacity utilization report.
type CapacityStat struct {
	Code        string  `db:"code"`
	Name        string  `db:"name"`
	Enrolled    int     `db:"enrolled"`
	MaxStudents int     `db:"max_students"`
	CapacityPct float64 `db:"capacity_pct"` // Rounded to one decimal place by the store
}
