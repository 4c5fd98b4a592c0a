package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Reviews reports, manages employees
	RoleEmployee Role = "employee" // Submits daily reports
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

type User struct {
	ID              string
	CompanyID       string
	FullName        string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user can review reports of the company
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SubmitsReports checks if user is expected to submit daily reports
func (u *User) SubmitsReports() bool {
	return u.IsActive && u.Role == RoleEmployee
}

// ToResponse converts a User entity to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		CompanyID:     u.CompanyID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          string(u.Role),
		OAuthProvider: u.OAuthProvider,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}
