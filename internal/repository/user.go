package repository

import (
	"context"

	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
)

type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user exists
	// with the given email; any other error is a storage fault.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
