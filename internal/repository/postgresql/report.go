package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// reportSelect selects reports joined with their author
func reportSelect() sq.SelectBuilder {
	return psql().
		Select("r.id", "r.company_id", "r.user_id", "r.date", "r.content", "r.created_at", "r.updated_at",
			"u.full_name", "u.email").
		From("reports r").
		Join("users u ON u.id = r.user_id")
}

func scanReport(row pgx.Row) (report.Report, error) {
	var r report.Report
	var date time.Time
	err := row.Scan(
		&r.ID,
		&r.CompanyID,
		&r.UserID,
		&date,
		&r.Content,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.UserFullName,
		&r.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}
	r.Date = workday.FormatDate(date)
	return r, nil
}

func (r *reportRepositoryImpl) queryReports(ctx context.Context, builder sq.SelectBuilder) ([]report.Report, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]report.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepositoryImpl) getOne(ctx context.Context, builder sq.SelectBuilder) (report.Report, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to build report query: %w", err)
	}
	return scanReport(GetQuerier(ctx, r.db).QueryRow(ctx, query, args...))
}

// Upsert implements report.ReportRepository.
func (r *reportRepositoryImpl) Upsert(ctx context.Context, rep report.Report) (report.Report, bool, error) {
	q := GetQuerier(ctx, r.db)

	// xmax is 0 only for rows inserted by this statement
	query := `
		WITH saved AS (
			INSERT INTO reports (company_id, user_id, date, content)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (company_id, user_id, date)
			DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
			RETURNING id, company_id, user_id, date, content, created_at, updated_at, (xmax = 0) AS inserted
		)
		SELECT s.id, s.company_id, s.user_id, s.date, s.content, s.created_at, s.updated_at,
			   u.full_name, u.email, s.inserted
		FROM saved s
		JOIN users u ON u.id = s.user_id
	`

	var saved report.Report
	var date time.Time
	var inserted bool
	err := q.QueryRow(ctx, query, rep.CompanyID, rep.UserID, rep.Date, rep.Content).Scan(
		&saved.ID,
		&saved.CompanyID,
		&saved.UserID,
		&date,
		&saved.Content,
		&saved.CreatedAt,
		&saved.UpdatedAt,
		&saved.UserFullName,
		&saved.UserEmail,
		&inserted,
	)
	if err != nil {
		return report.Report{}, false, fmt.Errorf("failed to upsert report: %w", err)
	}
	saved.Date = workday.FormatDate(date)
	return saved, inserted, nil
}

// GetByID implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (report.Report, error) {
	return r.getOne(ctx, reportSelect().Where(sq.Eq{"r.company_id": companyID, "r.id": id}))
}

// GetByUserAndDate implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByUserAndDate(ctx context.Context, companyID, userID, date string) (report.Report, error) {
	return r.getOne(ctx, reportSelect().Where(sq.Eq{
		"r.company_id": companyID,
		"r.user_id":    userID,
		"r.date":       date,
	}))
}

// ListByUser implements report.ReportRepository.
func (r *reportRepositoryImpl) ListByUser(ctx context.Context, companyID, userID string, dateRange report.DateRange) ([]report.Report, error) {
	builder := applyDateRange(
		reportSelect().Where(sq.Eq{"r.company_id": companyID, "r.user_id": userID}),
		dateRange,
	).OrderBy("r.date DESC")

	return r.queryReports(ctx, builder)
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, int, error) {
	where := sq.And{sq.Eq{"r.company_id": filter.CompanyID}}
	if filter.UserID != "" {
		where = append(where, sq.Eq{"r.user_id": filter.UserID})
	}
	if filter.Date != "" {
		where = append(where, sq.Eq{"r.date": filter.Date})
	}
	if filter.From != "" {
		where = append(where, sq.GtOrEq{"r.date": filter.From})
	}
	if filter.To != "" {
		where = append(where, sq.LtOrEq{"r.date": filter.To})
	}

	countQuery, countArgs, err := psql().
		Select("COUNT(*)").
		From("reports r").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	builder := reportSelect().
		Where(where).
		OrderBy("r.date DESC", "u.full_name", "r.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	reports, err := r.queryReports(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Exists implements report.ReportRepository.
func (r *reportRepositoryImpl) Exists(ctx context.Context, companyID, userID, date string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM reports WHERE company_id = $1 AND user_id = $2 AND date = $3)`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check report: %w", err)
	}
	return exists, nil
}

func applyDateRange(builder sq.SelectBuilder, dateRange report.DateRange) sq.SelectBuilder {
	if dateRange.From != "" {
		builder = builder.Where(sq.GtOrEq{"r.date": dateRange.From})
	}
	if dateRange.To != "" {
		builder = builder.Where(sq.LtOrEq{"r.date": dateRange.To})
	}
	return builder
}
