package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
	ErrUserDisabled       = errors.New("account disabled")
	ErrSessionExpired     = errors.New("session expired")
)
