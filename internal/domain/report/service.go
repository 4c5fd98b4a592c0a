package report

import "context"

// ReportService defines the interface for daily report use cases
type ReportService interface {
	Submit(ctx context.Context, companyID, userID string, req SubmitReportRequest) (SubmitReportResponse, error)
	AllowedDates(ctx context.Context) AllowedDatesResponse
	GetMine(ctx context.Context, companyID, userID, date string) (ReportResponse, error)
	ListMine(ctx context.Context, companyID, userID string, dateRange DateRange) ([]ReportResponse, error)
	List(ctx context.Context, filter ReportFilter) (ReportListResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ReportResponse, error)
}
