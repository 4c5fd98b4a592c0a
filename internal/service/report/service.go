package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
)

// SubmissionNotifier is told about every stored report.
type SubmissionNotifier interface {
	PublishReportSubmitted(userID string, date string)
}

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	notifier   SubmissionNotifier
	loc        *time.Location
	now        func() time.Time
}

// NewReportService creates the daily report service. loc decides which
// calendar day "today" is; nil means UTC.
func NewReportService(reportRepo report.ReportRepository, notifier SubmissionNotifier, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		notifier:   notifier,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	return workday.Today(s.now(), s.loc)
}

// Submit creates or replaces the caller's report for req.Date
func (s *ReportServiceImpl) Submit(ctx context.Context, companyID, userID string, req report.SubmitReportRequest) (report.SubmitReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SubmitReportResponse{}, err
	}

	date, err := workday.ParseDate(req.Date, s.loc)
	if err != nil {
		return report.SubmitReportResponse{}, err
	}
	if !workday.IsAllowedSubmissionDate(date, s.today()) {
		return report.SubmitReportResponse{}, report.ErrDateNotAllowed
	}

	saved, created, err := s.reportRepo.Upsert(ctx, report.Report{
		CompanyID: companyID,
		UserID:    userID,
		Date:      workday.FormatDate(date),
		Content:   req.Content,
	})
	if err != nil {
		return report.SubmitReportResponse{}, fmt.Errorf("failed to save report: %w", err)
	}

	if s.notifier != nil {
		s.notifier.PublishReportSubmitted(userID, saved.Date)
	}

	return report.SubmitReportResponse{
		Report:  saved.ToResponse(),
		Created: created,
	}, nil
}

// AllowedDates lists the dates a report can be submitted for right now
func (s *ReportServiceImpl) AllowedDates(ctx context.Context) report.AllowedDatesResponse {
	today := s.today()
	allowed := workday.AllowedSubmissionDates(today)

	dates := make([]string, len(allowed))
	for i, d := range allowed {
		dates[i] = workday.FormatDate(d)
	}
	return report.AllowedDatesResponse{
		Today:        workday.FormatDate(today),
		AllowedDates: dates,
	}
}

// GetMine returns the caller's report for date
func (s *ReportServiceImpl) GetMine(ctx context.Context, companyID, userID, date string) (report.ReportResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return report.ReportResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	r, err := s.reportRepo.GetByUserAndDate(ctx, companyID, userID, date)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return r.ToResponse(), nil
}

// ListMine returns the caller's reports, newest first
func (s *ReportServiceImpl) ListMine(ctx context.Context, companyID, userID string, dateRange report.DateRange) ([]report.ReportResponse, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListByUser(ctx, companyID, userID, dateRange)
	if err != nil {
		return nil, err
	}

	responses := make([]report.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = r.ToResponse()
	}
	return responses, nil
}

// List returns the company's reports for admin review
func (s *ReportServiceImpl) List(ctx context.Context, filter report.ReportFilter) (report.ReportListResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ReportListResponse{}, err
	}
	filter.Normalize()

	reports, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return report.ReportListResponse{}, err
	}

	responses := make([]report.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = r.ToResponse()
	}

	totalPages := total / filter.PageSize
	if total%filter.PageSize != 0 {
		totalPages++
	}

	return report.ReportListResponse{
		Reports:    responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetByID returns one report of the company
func (s *ReportServiceImpl) GetByID(ctx context.Context, companyID, id string) (report.ReportResponse, error) {
	r, err := s.reportRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return r.ToResponse(), nil
}
