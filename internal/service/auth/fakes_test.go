package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
)

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User // by id
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByOAuth(_ context.Context, provider, providerID string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider && u.OAuthProviderID != nil && *u.OAuthProviderID == providerID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(_ context.Context, googleID string, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthProviderID = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, companyID string, role *user.Role) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	all, _ := f.ListByCompany(ctx, companyID, &role)
	var out []user.User
	for _, u := range all {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
	seq       int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]company.Company{}}
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	for _, c := range f.companies {
		if c.Username == username {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	f.seq++
	c.ID = fmt.Sprintf("company-%d", f.seq)
	f.companies[c.ID] = c
	return c, nil
}

func (f *fakeCompanyRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeCompanyRepo) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range f.companies {
		ids = append(ids, id)
	}
	return ids, nil
}

type storedToken struct {
	userID  string
	revoked bool
}

type fakeJWTRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{tokens: map[string]*storedToken{}}
}

func (f *fakeJWTRepo) CreateRefreshToken(_ context.Context, userID string, token string, _ int64, _ auth.SessionTrackingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(_ context.Context, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return t.userID, t.revoked, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (f *fakeJWTRepo) DeleteExpiredRefreshTokens(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
