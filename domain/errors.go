package domain

import "errors"

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserDisabled      = errors.New("user account is disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Verification code errors
var (
	ErrCodeNotFound = errors.New("verification code not found")
	ErrCodeInvalid  = errors.New("invalid verification code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Throttling errors
var (
	ErrRateLimited = errors.New("too many requests")
)
