package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/rishabhkalra96/invoice-dashboard/internal/usecase"
)

// ---- fakes ----

type fakeInvoiceRepo struct {
	insert   func(ctx context.Context, inv *domain.Invoice) error
	update   func(ctx context.Context, inv *domain.Invoice) error
	delete   func(ctx context.Context, id string) error
	list     func(ctx context.Context) ([]domain.InvoiceSummary, error)
	findByID func(ctx context.Context, id string) (*domain.Invoice, error)

	insertCalls int
	updateCalls int
	deleteCalls int
}

func (r *fakeInvoiceRepo) Insert(ctx context.Context, inv *domain.Invoice) error {
	r.insertCalls++
	if r.insert == nil {
		return nil
	}
	return r.insert(ctx, inv)
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	r.updateCalls++
	if r.update == nil {
		return nil
	}
	return r.update(ctx, inv)
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	r.deleteCalls++
	if r.delete == nil {
		return nil
	}
	return r.delete(ctx, id)
}

func (r *fakeInvoiceRepo) List(ctx context.Context) ([]domain.InvoiceSummary, error) {
	if r.list == nil {
		return nil, nil
	}
	return r.list(ctx)
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if r.findByID == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.findByID(ctx, id)
}

type fakeCustomerRepo struct{}

func (r *fakeCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	return []domain.Customer{{ID: "c1", Name: "Acme Corp"}}, nil
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("not cached")
}

func (c *fakeCache) Set(_ context.Context, _ string, _ []byte) error {
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, path string) error {
	c.invalidated = append(c.invalidated, path)
	return nil
}

func newInvoiceUsecase(repo *fakeInvoiceRepo, cache *fakeCache) *usecase.InvoiceUsecase {
	return usecase.NewInvoiceUsecase(repo, &fakeCustomerRepo{}, cache, slog.Default())
}

func validFields() map[string]string {
	return map[string]string{
		"customerId": "c1",
		"amount":     "49.99",
		"status":     "pending",
	}
}

// ---- Create ----

func TestCreate_Valid_InsertsAndNavigates(t *testing.T) {
	var inserted *domain.Invoice
	repo := &fakeInvoiceRepo{
		insert: func(_ context.Context, inv *domain.Invoice) error {
			inserted = inv
			inv.ID = "inv-1"
			return nil
		},
	}
	cache := &fakeCache{}

	outcome := newInvoiceUsecase(repo, cache).Create(context.Background(), validFields())

	if outcome.Failure != nil {
		t.Fatalf("Failure = %+v, want nil", outcome.Failure)
	}
	if outcome.Navigate != "/dashboard/invoices" {
		t.Errorf("Navigate = %q, want /dashboard/invoices", outcome.Navigate)
	}
	if inserted == nil {
		t.Fatal("Insert was not called")
	}
	if inserted.Amount != 4999 {
		t.Errorf("stored amount = %d, want 4999", inserted.Amount)
	}
	if inserted.Status != domain.StatusPending {
		t.Errorf("stored status = %q, want pending", inserted.Status)
	}
	if want := time.Now().UTC().Format("2006-01-02"); inserted.Date != want {
		t.Errorf("stored date = %q, want today (%s)", inserted.Date, want)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "/dashboard/invoices" {
		t.Errorf("invalidated paths = %v, want [/dashboard/invoices]", cache.invalidated)
	}
}

func TestCreate_InvalidFields_NoStorageCall(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	cache := &fakeCache{}

	fields := map[string]string{"customerId": "", "amount": "10", "status": "paid"}
	outcome := newInvoiceUsecase(repo, cache).Create(context.Background(), fields)

	if outcome.Navigate != "" {
		t.Errorf("Navigate = %q, want empty", outcome.Navigate)
	}
	if outcome.Failure == nil {
		t.Fatal("Failure = nil, want submission result")
	}
	if outcome.Failure.Message != usecase.MsgCreateMissingFields {
		t.Errorf("Message = %q, want %q", outcome.Failure.Message, usecase.MsgCreateMissingFields)
	}
	got := outcome.Failure.FieldErrors["customerId"]
	if len(got) != 1 || got[0] != "Please select a customer" {
		t.Errorf("customerId errors = %v", got)
	}
	if repo.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0", repo.insertCalls)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache invalidated on validation failure: %v", cache.invalidated)
	}
}

func TestCreate_NonPositiveAmount_NoStorageCall(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	fields := validFields()
	fields["amount"] = "0"

	outcome := newInvoiceUsecase(repo, &fakeCache{}).Create(context.Background(), fields)

	if outcome.Failure == nil {
		t.Fatal("Failure = nil, want submission result")
	}
	got := outcome.Failure.FieldErrors["amount"]
	if len(got) != 1 || got[0] != "Please enter an amount greater than $0." {
		t.Errorf("amount errors = %v", got)
	}
	if repo.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0", repo.insertCalls)
	}
}

func TestCreate_StorageError_GenericMessage(t *testing.T) {
	repo := &fakeInvoiceRepo{
		insert: func(_ context.Context, _ *domain.Invoice) error {
			return errors.New("unique constraint violated on secret_column")
		},
	}
	cache := &fakeCache{}

	outcome := newInvoiceUsecase(repo, cache).Create(context.Background(), validFields())

	if outcome.Failure == nil {
		t.Fatal("Failure = nil, want submission result")
	}
	if outcome.Failure.Message != usecase.MsgCreateDBError {
		t.Errorf("Message = %q, want %q", outcome.Failure.Message, usecase.MsgCreateDBError)
	}
	if outcome.Failure.FieldErrors != nil {
		t.Errorf("FieldErrors = %v, want nil", outcome.Failure.FieldErrors)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache invalidated on storage failure: %v", cache.invalidated)
	}
}

// ---- Update ----

func TestUpdate_Valid_KeysByIDAndLeavesDateAlone(t *testing.T) {
	var updated *domain.Invoice
	repo := &fakeInvoiceRepo{
		update: func(_ context.Context, inv *domain.Invoice) error {
			updated = inv
			return nil
		},
	}
	cache := &fakeCache{}

	fields := map[string]string{"customerId": "c2", "amount": "10.00", "status": "paid"}
	outcome := newInvoiceUsecase(repo, cache).Update(context.Background(), "inv-42", fields)

	if outcome.Navigate != "/dashboard/invoices" {
		t.Fatalf("Navigate = %q, Failure = %+v", outcome.Navigate, outcome.Failure)
	}
	if updated.ID != "inv-42" {
		t.Errorf("ID = %q, want inv-42", updated.ID)
	}
	if updated.Amount != 1000 {
		t.Errorf("Amount = %d, want 1000", updated.Amount)
	}
	if updated.Status != domain.StatusPaid {
		t.Errorf("Status = %q, want paid", updated.Status)
	}
	if updated.Date != "" {
		t.Errorf("Date = %q, update must not touch the date", updated.Date)
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("invalidated paths = %v", cache.invalidated)
	}
}

func TestUpdate_InvalidFields_NoStorageCall(t *testing.T) {
	repo := &fakeInvoiceRepo{}

	fields := map[string]string{"customerId": "c1", "amount": "10", "status": "overdue"}
	outcome := newInvoiceUsecase(repo, &fakeCache{}).Update(context.Background(), "inv-42", fields)

	if outcome.Failure == nil {
		t.Fatal("Failure = nil, want submission result")
	}
	if outcome.Failure.Message != usecase.MsgUpdateMissingFields {
		t.Errorf("Message = %q, want %q", outcome.Failure.Message, usecase.MsgUpdateMissingFields)
	}
	if repo.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0", repo.updateCalls)
	}
}

func TestUpdate_UnknownID_Succeeds(t *testing.T) {
	// The repo reports success for zero rows affected; the usecase must
	// treat that exactly like a real update.
	repo := &fakeInvoiceRepo{}
	cache := &fakeCache{}

	outcome := newInvoiceUsecase(repo, cache).Update(context.Background(), "no-such-id", validFields())

	if outcome.Navigate != "/dashboard/invoices" {
		t.Errorf("Navigate = %q, Failure = %+v", outcome.Navigate, outcome.Failure)
	}
}

func TestUpdate_StorageError_GenericMessage(t *testing.T) {
	repo := &fakeInvoiceRepo{
		update: func(_ context.Context, _ *domain.Invoice) error {
			return errors.New("connection reset")
		},
	}

	outcome := newInvoiceUsecase(repo, &fakeCache{}).Update(context.Background(), "inv-42", validFields())

	if outcome.Failure == nil || outcome.Failure.Message != usecase.MsgUpdateDBError {
		t.Errorf("outcome = %+v, want message %q", outcome, usecase.MsgUpdateDBError)
	}
}

// ---- Delete ----

func TestDelete_Success_InvalidatesAndNavigates(t *testing.T) {
	var deletedID string
	repo := &fakeInvoiceRepo{
		delete: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	cache := &fakeCache{}

	outcome := newInvoiceUsecase(repo, cache).Delete(context.Background(), "inv-7")

	if outcome.Navigate != "/dashboard/invoices" {
		t.Fatalf("Navigate = %q, Failure = %+v", outcome.Navigate, outcome.Failure)
	}
	if deletedID != "inv-7" {
		t.Errorf("deleted id = %q, want inv-7", deletedID)
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("invalidated paths = %v", cache.invalidated)
	}
}

func TestDelete_UnknownID_Succeeds(t *testing.T) {
	outcome := newInvoiceUsecase(&fakeInvoiceRepo{}, &fakeCache{}).Delete(context.Background(), "no-such-id")
	if outcome.Failure != nil {
		t.Errorf("Failure = %+v, want nil", outcome.Failure)
	}
}

func TestDelete_StorageError_GenericMessage(t *testing.T) {
	repo := &fakeInvoiceRepo{
		delete: func(_ context.Context, _ string) error {
			return errors.New("db down")
		},
	}
	cache := &fakeCache{}

	outcome := newInvoiceUsecase(repo, cache).Delete(context.Background(), "inv-7")

	if outcome.Failure == nil || outcome.Failure.Message != usecase.MsgDeleteDBError {
		t.Errorf("outcome = %+v, want message %q", outcome, usecase.MsgDeleteDBError)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache invalidated on storage failure: %v", cache.invalidated)
	}
}
