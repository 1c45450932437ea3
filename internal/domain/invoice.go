package domain

import "errors"

var ErrInvoiceNotFound = errors.New("invoice not found")

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Invoice amounts are stored in minor currency units (cents).
// Date is a calendar date in ISO form (2006-01-02), assigned by the
// server on create and never changed afterwards.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     Status
	Date       string
}

// InvoiceSummary is one row of the invoice list view, joined with the
// customer's display name.
type InvoiceSummary struct {
	ID           string
	CustomerName string
	Amount       int64
	Status       Status
	Date         string
}

type Customer struct {
	ID   string
	Name string
}
