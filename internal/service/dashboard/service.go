package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

// trendDays is the number of days shown in the trend, ending on the requested date
const trendDays = 7

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// getCompanyID extracts company_id from JWT claims
func (s *DashboardServiceImpl) getCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in claims")
	}
	return companyID, nil
}

// parseDate parses YYYY-MM-DD format, defaults to today
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	if date == "" {
		return workday.Today(s.now(), s.loc), nil
	}
	parsed, err := workday.ParseDate(date, s.loc)
	if err != nil {
		return time.Time{}, dashboard.ErrInvalidDate
	}
	return parsed, nil
}

// GetDashboard returns the submission summary and trend using parallel queries
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, date string) (*dashboard.DashboardResponse, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	companyID, err := s.getCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	dateStr := workday.FormatDate(day)
	from := day.AddDate(0, 0, -(trendDays - 1))

	var (
		employees []dashboard.EmployeeItem
		submitted []string
		counts    map[string]int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Active employees
	g.Go(func() error {
		var err error
		employees, err = s.GetActiveEmployees(gCtx, companyID)
		return err
	})

	// 2. Who submitted on the date
	g.Go(func() error {
		var err error
		submitted, err = s.GetSubmittedUserIDs(gCtx, companyID, dateStr)
		return err
	})

	// 3. Counts for the trend window
	g.Go(func() error {
		var err error
		counts, err = s.GetSubmissionCounts(gCtx, companyID, workday.FormatDate(from), dateStr)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return &dashboard.DashboardResponse{
		Submission: buildSubmission(day, employees, submitted),
		Trend:      buildTrend(from, counts),
	}, nil
}

func buildSubmission(day time.Time, employees []dashboard.EmployeeItem, submittedIDs []string) dashboard.DailySubmissionResponse {
	submitted := make(map[string]struct{}, len(submittedIDs))
	for _, id := range submittedIDs {
		submitted[id] = struct{}{}
	}

	missing := make([]dashboard.MissingEmployeeItem, 0)
	var done int64
	for _, e := range employees {
		if _, ok := submitted[e.UserID]; ok {
			done++
			continue
		}
		missing = append(missing, dashboard.MissingEmployeeItem{
			UserID:   e.UserID,
			FullName: e.FullName,
			Email:    e.Email,
		})
	}

	total := int64(len(employees))
	var rate float64
	if total > 0 {
		rate = math.Round(float64(done)/float64(total)*10000) / 100
	}

	return dashboard.DailySubmissionResponse{
		Date:             workday.FormatDate(day),
		IsWorkingDay:     workday.IsWorkingDay(day),
		TotalEmployees:   total,
		Submitted:        done,
		Missing:          int64(len(missing)),
		SubmissionRate:   rate,
		MissingEmployees: missing,
	}
}

func buildTrend(from time.Time, counts map[string]int64) []dashboard.DaySubmissionItem {
	trend := make([]dashboard.DaySubmissionItem, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		d := from.AddDate(0, 0, i)
		key := workday.FormatDate(d)
		trend = append(trend, dashboard.DaySubmissionItem{
			Date:         key,
			IsWorkingDay: workday.IsWorkingDay(d),
			Submitted:    counts[key],
		})
	}
	return trend
}
