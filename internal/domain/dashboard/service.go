package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the submission summary for date plus a trend of the preceding week
	GetDashboard(ctx context.Context, date string) (*DashboardResponse, error)
}
