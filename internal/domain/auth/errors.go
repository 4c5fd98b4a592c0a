package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrAccountLocked              = errors.New("too many failed login attempts, try again later")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrEmailAlreadyExists         = errors.New("email already registered")
	ErrUserNotFound               = errors.New("user not found")
	ErrUserInactive               = errors.New("user is inactive")
	ErrOAuthUserNotFound          = errors.New("no account is registered for this google email")
	ErrStateMismatch              = errors.New("oauth state mismatch")
	ErrCodeValueEmpty             = errors.New("oauth code is empty")
)
