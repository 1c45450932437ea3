package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) Insert(ctx context.Context, inv *domain.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id::text`

	err := r.pool.QueryRow(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update replaces the three mutable columns keyed by id. Zero rows
// affected is indistinguishable from success on purpose: last write wins
// and there is no existence check.
func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2,
		    amount      = $3,
		    status      = $4
		WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, inv.ID, inv.CustomerID, inv.Amount, inv.Status); err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	query := `
		SELECT i.id::text, c.name, i.amount, i.status, i.date::text
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var summaries []domain.InvoiceSummary
	for rows.Next() {
		var s domain.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.Amount, &s.Status, &s.Date); err != nil {
			return nil, fmt.Errorf("scan invoice summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return summaries, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT id::text, customer_id::text, amount, status, date::text
		FROM invoices
		WHERE id = $1`

	var inv domain.Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &inv.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return &inv, nil
}
