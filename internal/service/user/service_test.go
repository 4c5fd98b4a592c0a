package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) find(match func(user.User) bool) (user.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	return f.find(func(u user.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return f.find(func(u user.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByOAuth(context.Context, string, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(context.Context, string, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, companyID string, role *user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.CompanyID == companyID && (role == nil || u.Role == *role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListActiveEmployees(ctx context.Context, companyID string) ([]user.User, error) {
	role := user.RoleEmployee
	return f.ListByCompany(ctx, companyID, &role)
}

func seededRepo() *fakeUserRepo {
	return &fakeUserRepo{users: []user.User{
		{ID: "a1", CompanyID: "c1", FullName: "Ada", Email: "ada@acme.com", Role: user.RoleAdmin, IsActive: true},
		{ID: "e1", CompanyID: "c1", FullName: "Eve", Email: "eve@acme.com", Role: user.RoleEmployee, IsActive: true},
		{ID: "e2", CompanyID: "c2", FullName: "Bob", Email: "bob@other.com", Role: user.RoleEmployee, IsActive: true},
	}}
}

func TestUserService_Me(t *testing.T) {
	svc := NewUserService(seededRepo())

	resp, err := svc.Me(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "Eve", resp.FullName)
	assert.Equal(t, "c1", resp.CompanyID)
	assert.Equal(t, "employee", resp.Role)

	_, err = svc.Me(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	svc := NewUserService(seededRepo())
	ctx := context.Background()

	all, err := svc.List(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	employee := user.RoleEmployee
	employees, err := svc.List(ctx, "c1", &employee)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "e1", employees[0].ID)

	_, err = svc.List(ctx, "", nil)
	assert.ErrorIs(t, err, user.ErrCompanyIDRequired)
}

func TestUserService_CreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to employee in admin's company", func(t *testing.T) {
		repo := seededRepo()
		svc := NewUserService(repo)

		resp, err := svc.CreateEmployee(ctx, "c1", user.CreateUserRequest{
			FullName: "New Hire",
			Email:    "New.Hire@Acme.com",
			Password: "initialpass",
		})
		require.NoError(t, err)
		assert.Equal(t, "c1", resp.CompanyID)
		assert.Equal(t, "employee", resp.Role)
		assert.Equal(t, "new.hire@acme.com", resp.Email)
		assert.True(t, resp.IsActive)

		stored, err := repo.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("initialpass")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewUserService(seededRepo())

		_, err := svc.CreateEmployee(ctx, "c1", user.CreateUserRequest{
			FullName: "Eve Again",
			Email:    "eve@acme.com",
			Password: "initialpass",
		})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewUserService(seededRepo())

		_, err := svc.CreateEmployee(ctx, "c1", user.CreateUserRequest{
			Email:    "not-an-email",
			Password: "short",
			Role:     "owner",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "full_name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.Contains(t, fields, "role")
	})
}
