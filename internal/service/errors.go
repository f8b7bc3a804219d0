package service

import "errors"

// ErrInvalidCredentials is the single failure returned for unknown email,
// inactive account, wrong password and (in two-factor mode) a bad code.
// Keeping one message across all of them prevents account enumeration.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrInvalidCode            = errors.New("invalid or expired code")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrCodeDelivery           = errors.New("verification code delivery failed")
)
