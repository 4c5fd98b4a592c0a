package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewReportRepository(db)

	c := createCompany(t, db, "acme")
	other := createCompany(t, db, "other")
	u1 := createUser(t, db, c.ID, "u1@acme.com", user.RoleEmployee)
	u2 := createUser(t, db, c.ID, "u2@acme.com", user.RoleEmployee)

	saved, created, err := repo.Upsert(ctx, report.Report{CompanyID: c.ID, UserID: u1.ID, Date: "2024-03-11", Content: "first"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2024-03-11", saved.Date)
	assert.Equal(t, "u1@acme.com", saved.UserEmail)

	updated, created, err := repo.Upsert(ctx, report.Report{CompanyID: c.ID, UserID: u1.ID, Date: "2024-03-11", Content: "edited"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "edited", updated.Content)

	_, _, err = repo.Upsert(ctx, report.Report{CompanyID: c.ID, UserID: u1.ID, Date: "2024-03-12", Content: "tuesday"})
	require.NoError(t, err)
	_, _, err = repo.Upsert(ctx, report.Report{CompanyID: c.ID, UserID: u2.ID, Date: "2024-03-12", Content: "u2"})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, c.ID, u1.ID, "2024-03-11")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, other.ID, u1.ID, "2024-03-11")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, other.ID, saved.ID)
	assert.ErrorIs(t, err, report.ErrReportNotFound)

	got, err := repo.GetByUserAndDate(ctx, c.ID, u1.ID, "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, "tuesday", got.Content)

	mine, err := repo.ListByUser(ctx, c.ID, u1.ID, report.DateRange{From: "2024-03-12"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "2024-03-12", mine[0].Date)

	list, total, err := repo.List(ctx, report.ReportFilter{CompanyID: c.ID, Date: "2024-03-12", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 1)
}
