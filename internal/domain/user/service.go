package user

import "context"

type UserService interface {
	Me(ctx context.Context, userID string) (UserResponse, error)
	List(ctx context.Context, companyID string, role *Role) ([]UserResponse, error)
	CreateEmployee(ctx context.Context, companyID string, req CreateUserRequest) (UserResponse, error)
}
