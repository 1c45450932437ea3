package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/rishabhkalra96/invoice-dashboard/internal/form"
	"github.com/rishabhkalra96/invoice-dashboard/internal/metrics"
	"github.com/rishabhkalra96/invoice-dashboard/internal/repository"
	"github.com/rishabhkalra96/invoice-dashboard/internal/viewcache"
)

// InvoiceListPath is the view every successful mutation invalidates and
// navigates back to.
const InvoiceListPath = "/dashboard/invoices"

// Summary messages returned with a failed submission. Storage errors are
// collapsed into these; the cause is only logged.
const (
	MsgCreateMissingFields = "Missing Fields data. Failed to create invoice"
	MsgUpdateMissingFields = "Missing Fields data. Failed to update invoice"
	MsgCreateDBError       = "Database Error: Failed to create invoice"
	MsgUpdateDBError       = "Database Error: Failed to update invoice"
	MsgDeleteDBError       = "Database Error: Failed to delete invoice"
)

// SubmissionResult is returned to the caller when a mutation fails, for
// re-rendering the form. FieldErrors is nil on storage failures.
type SubmissionResult struct {
	Message     string
	FieldErrors form.Errors
}

// Outcome is the tagged result of a mutation: either a navigation to a
// view (success) or a SubmissionResult (failure). Exactly one is set.
type Outcome struct {
	Navigate string
	Failure  *SubmissionResult
}

type InvoiceUsecase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	cache     viewcache.Cache
	logger    *slog.Logger
}

func NewInvoiceUsecase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	cache viewcache.Cache,
	logger *slog.Logger,
) *InvoiceUsecase {
	return &InvoiceUsecase{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		logger:    logger.With("component", "invoice_usecase"),
	}
}

// Create validates the raw form fields, converts the amount to cents,
// assigns today's UTC date and inserts the invoice. Storage is never
// touched when validation fails.
func (u *InvoiceUsecase) Create(ctx context.Context, fields map[string]string) Outcome {
	input, ferrs := form.ParseInvoice(fields)
	if ferrs != nil {
		metrics.InvoiceMutationsTotal.WithLabelValues("create", "validation_error").Inc()
		return Outcome{Failure: &SubmissionResult{
			Message:     MsgCreateMissingFields,
			FieldErrors: ferrs,
		}}
	}

	inv := &domain.Invoice{
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Status:     input.Status,
		Date:       time.Now().UTC().Format("2006-01-02"),
	}
	if err := u.invoices.Insert(ctx, inv); err != nil {
		u.logger.ErrorContext(ctx, "insert invoice", "error", err)
		metrics.InvoiceMutationsTotal.WithLabelValues("create", "db_error").Inc()
		return Outcome{Failure: &SubmissionResult{Message: MsgCreateDBError}}
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("create", "success").Inc()
	u.invalidateList(ctx)
	return Outcome{Navigate: InvoiceListPath}
}

// Update replaces customer, amount and status of the invoice with the
// given id. The id comes from the route, never from form content, and the
// stored date is left untouched. Updating an unknown id succeeds.
func (u *InvoiceUsecase) Update(ctx context.Context, id string, fields map[string]string) Outcome {
	input, ferrs := form.ParseInvoice(fields)
	if ferrs != nil {
		metrics.InvoiceMutationsTotal.WithLabelValues("update", "validation_error").Inc()
		return Outcome{Failure: &SubmissionResult{
			Message:     MsgUpdateMissingFields,
			FieldErrors: ferrs,
		}}
	}

	inv := &domain.Invoice{
		ID:         id,
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Status:     input.Status,
	}
	if err := u.invoices.Update(ctx, inv); err != nil {
		u.logger.ErrorContext(ctx, "update invoice", "invoice_id", id, "error", err)
		metrics.InvoiceMutationsTotal.WithLabelValues("update", "db_error").Inc()
		return Outcome{Failure: &SubmissionResult{Message: MsgUpdateDBError}}
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("update", "success").Inc()
	u.invalidateList(ctx)
	return Outcome{Navigate: InvoiceListPath}
}

// Delete removes the invoice with the given id. Deleting an unknown id
// succeeds.
func (u *InvoiceUsecase) Delete(ctx context.Context, id string) Outcome {
	if err := u.invoices.Delete(ctx, id); err != nil {
		u.logger.ErrorContext(ctx, "delete invoice", "invoice_id", id, "error", err)
		metrics.InvoiceMutationsTotal.WithLabelValues("delete", "db_error").Inc()
		return Outcome{Failure: &SubmissionResult{Message: MsgDeleteDBError}}
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("delete", "success").Inc()
	u.invalidateList(ctx)
	return Outcome{Navigate: InvoiceListPath}
}

func (u *InvoiceUsecase) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	return u.invoices.List(ctx)
}

func (u *InvoiceUsecase) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return u.invoices.FindByID(ctx, id)
}

func (u *InvoiceUsecase) Customers(ctx context.Context) ([]domain.Customer, error) {
	return u.customers.List(ctx)
}

// invalidateList marks the cached list view stale. A failed invalidation
// only delays freshness until the entry's TTL, so it is logged, not
// surfaced.
func (u *InvoiceUsecase) invalidateList(ctx context.Context) {
	if err := u.cache.Invalidate(ctx, InvoiceListPath); err != nil {
		u.logger.WarnContext(ctx, "invalidate list view", "error", err)
	}
}
