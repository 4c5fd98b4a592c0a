package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	ListByCompany(ctx context.Context, companyID string, role *Role) ([]User, error)
	ListActiveEmployees(ctx context.Context, companyID string) ([]User, error)
}
