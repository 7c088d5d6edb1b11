package dto

import (
	"fmt"

	"github.com/okanv/uniregistry/internal/app/models"
)

// EnrollmentStatResponse is one row of the enrollment capacity report
type EnrollmentStatResponse struct {
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	Enrolled     int    `json:"enrolled"`
	MaxCapacity  int    `json:"max_capacity"`
	CapacityUsed string `json:"capacity_used"` // e.g. "87.5%"
}

// NewEnrollmentStatResponse maps a capacity stat row to its response form
func NewEnrollmentStatResponse(stat *models.CapacityStat) EnrollmentStatResponse {
	return EnrollmentStatResponse{
		CourseCode:   stat.Code,
		CourseName:   stat.Name,
		Enrolled:     stat.Enrolled,
		MaxCapacity:  stat.MaxStudents,
		CapacityUsed: fmt.Sprintf("%.1f%%", stat.CapacityPct),
	}
}
