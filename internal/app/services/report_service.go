package services

import (
	"context"
	"fmt"

	"github.com/okanv/uniregistry/internal/app/models"
	"github.com/okanv/uniregistry/internal/app/repositories"
)

// ReportService produces aggregate views over the enrollment data
type ReportService struct {
	reportRepo repositories.IReportRepository
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo repositories.IReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
	}
}

// CapacityReport computes per-course capacity utilization, highest first.
// Courses with zero enrollments are included.
func (s *ReportService) CapacityReport(ctx context.Context) ([]*models.CapacityStat, error) {
	stats, err := s.reportRepo.CapacityStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing capacity report: %w", err)
	}

	return stats, nil
}
