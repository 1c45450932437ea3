package repository

import (
	"context"

	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
)

type InvoiceRepository interface {
	// Insert stores a new invoice and fills in the storage-assigned ID.
	Insert(ctx context.Context, inv *domain.Invoice) error
	// Update replaces customer_id, amount and status for the given ID.
	// Updating a non-existent ID is a no-op, not an error.
	Update(ctx context.Context, inv *domain.Invoice) error
	// Delete removes the invoice with the given ID. Deleting a
	// non-existent ID is a no-op, not an error.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.InvoiceSummary, error)
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
}
