package repository

import (
	"context"

	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
}
