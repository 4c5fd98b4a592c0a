package report

import "context"

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// Upsert stores the report keyed by (company_id, user_id, date) and reports
	// whether a new row was created.
	Upsert(ctx context.Context, r Report) (Report, bool, error)
	GetByID(ctx context.Context, companyID, id string) (Report, error)
	GetByUserAndDate(ctx context.Context, companyID, userID, date string) (Report, error)
	ListByUser(ctx context.Context, companyID, userID string, dateRange DateRange) ([]Report, error)
	List(ctx context.Context, filter ReportFilter) ([]Report, int, error)
	Exists(ctx context.Context, companyID, userID, date string) (bool, error)
}
