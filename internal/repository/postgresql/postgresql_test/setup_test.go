package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// openTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is not set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	if testDB == nil {
		db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 5, ConnectTimeout: 5 * time.Second})
		require.NoError(t, err)

		schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "db", "migrations", "000001_init.up.sql"))
		require.NoError(t, err)
		_, err = db.Exec(ctx, string(schema))
		require.NoError(t, err)

		testDB = db
	}

	_, err := testDB.Exec(ctx, "TRUNCATE TABLE notifications, reports, refresh_tokens, users, companies CASCADE")
	require.NoError(t, err)
	return testDB
}

func createCompany(t *testing.T, db *database.DB, username string) company.Company {
	t.Helper()
	c, err := postgresql.NewCompanyRepository(db).Create(context.Background(), company.Company{
		Name:     "Company " + username,
		Username: username,
	})
	require.NoError(t, err)
	return c
}

func createUser(t *testing.T, db *database.DB, companyID, email string, role user.Role) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		CompanyID: companyID,
		FullName:  "User " + email,
		Email:     email,
		Role:      role,
		IsActive:  true,
	})
	require.NoError(t, err)
	return u
}
