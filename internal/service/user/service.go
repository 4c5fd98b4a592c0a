package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	authservice "github.com/cmlabs-hris/daily-report-backend-go/internal/service/auth"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// Me implements user.UserService.
func (u *UserServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := u.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return userData.ToResponse(), nil
}

// List implements user.UserService.
func (u *UserServiceImpl) List(ctx context.Context, companyID string, role *user.Role) ([]user.UserResponse, error) {
	if companyID == "" {
		return nil, user.ErrCompanyIDRequired
	}

	users, err := u.UserRepository.ListByCompany(ctx, companyID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}

// CreateEmployee implements user.UserService. The new account belongs to the admin's company.
func (u *UserServiceImpl) CreateEmployee(ctx context.Context, companyID string, req user.CreateUserRequest) (user.UserResponse, error) {
	if companyID == "" {
		return user.UserResponse{}, user.ErrCompanyIDRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	email := validator.NormalizeEmail(req.Email)
	exists, err := u.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrUserEmailExists
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	hashedPassword, err := authservice.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := u.UserRepository.Create(ctx, user.User{
		CompanyID:    companyID,
		FullName:     req.FullName,
		Email:        email,
		PasswordHash: &hashedPassword,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "company_id", companyID, "user_id", newUser.ID, "role", role)
	return newUser.ToResponse(), nil
}
