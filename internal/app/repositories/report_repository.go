package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okanv/uniregistry/internal/app/models"
)

// IReportRepository defines the interface for reporting queries
type IReportRepository interface {
	CapacityStats(ctx context.Context) ([]*models.CapacityStat, error)
}

// ReportRepository handles aggregation queries for reporting
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// CapacityStats computes per-course capacity utilization. The LEFT JOIN keeps
// courses with zero enrollments in the result. Ties in capacity_pct are left
// in store order.
func (r *ReportRepository) CapacityStats(ctx context.Context) ([]*models.CapacityStat, error) {
	query := `
		SELECT
			c.code, c.name,
			COUNT(e.student_id) AS enrolled,
			c.max_students,
			ROUND(COUNT(e.student_id)::numeric / c.max_students * 100, 1) AS capacity_pct
		FROM courses c
		LEFT JOIN enrollments e ON c.course_id = e.course_id
		GROUP BY c.course_id, c.code, c.name, c.max_students
		ORDER BY capacity_pct DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.CapacityStat
	for rows.Next() {
		var stat models.CapacityStat
		if err := rows.Scan(
			&stat.Code,
			&stat.Name,
			&stat.Enrolled,
			&stat.MaxStudents,
			&stat.CapacityPct,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
