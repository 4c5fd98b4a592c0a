package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetActiveEmployees returns active employees expected to submit reports
func (r *dashboardRepositoryImpl) GetActiveEmployees(ctx context.Context, companyID string) ([]dashboard.EmployeeItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, email
		FROM users
		WHERE company_id = $1 AND role = $2 AND is_active = TRUE
		ORDER BY full_name, id
	`

	rows, err := q.Query(ctx, query, companyID, string(user.RoleEmployee))
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	items := make([]dashboard.EmployeeItem, 0)
	for rows.Next() {
		var item dashboard.EmployeeItem
		if err := rows.Scan(&item.UserID, &item.FullName, &item.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetSubmittedUserIDs returns the users that submitted a report on date
func (r *dashboardRepositoryImpl) GetSubmittedUserIDs(ctx context.Context, companyID string, date string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT user_id FROM reports WHERE company_id = $1 AND date = $2`, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get submitted users: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSubmissionCounts returns report counts per date in [from, to] in a single query
func (r *dashboardRepositoryImpl) GetSubmissionCounts(ctx context.Context, companyID string, from, to string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, COUNT(*)
		FROM reports
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var date time.Time
		var count int64
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("failed to scan submission count: %w", err)
		}
		counts[workday.FormatDate(date)] = count
	}
	return counts, rows.Err()
}
