package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is read-only from this application's point of view; records are
// created by the seed command or by operators. Password holds the bcrypt
// hash and must never leave the auth layer.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthError marks a classified authentication failure that is not a
// credential mismatch (e.g. session token issuance). Anything not wrapped
// in AuthError and not ErrInvalidCredentials is a system fault and must be
// escalated, not shown as an auth message.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
