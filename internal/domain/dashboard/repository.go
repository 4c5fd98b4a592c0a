package dashboard

import (
	"context"
)

// EmployeeItem is the minimal employee projection the dashboard needs
type EmployeeItem struct {
	UserID   string
	FullName string
	Email    string
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetActiveEmployees returns active employees expected to submit reports
	GetActiveEmployees(ctx context.Context, companyID string) ([]EmployeeItem, error)

	// GetSubmittedUserIDs returns the users that submitted a report on date
	GetSubmittedUserIDs(ctx context.Context, companyID string, date string) ([]string, error)

	// GetSubmissionCounts returns report counts per date in [from, to]
	GetSubmissionCounts(ctx context.Context, companyID string, from, to string) (map[string]int64, error)
}
