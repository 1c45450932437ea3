// Package form validates raw invoice form submissions. It mirrors the
// submitted field names (customerId, amount, status) and always returns a
// field-keyed error map instead of failing hard, so callers can re-render
// the form with inline messages.
package form

import (
	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// User-facing validation messages. Keep in sync with the form templates.
const (
	MsgSelectCustomer = "Please select a customer"
	MsgAmountTooSmall = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

// Form field names as submitted by the invoice pages.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// InvoiceInput is a validated invoice submission. Amount has already been
// converted to minor currency units. ID and date are server-assigned and
// intentionally absent.
type InvoiceInput struct {
	CustomerID string
	Amount     int64
	Status     domain.Status
}

var hundred = decimal.NewFromInt(100)

// ParseInvoice validates a raw field mapping. On success it returns the
// typed input and a nil error map; otherwise a non-nil map with one or
// more messages per offending field. It never returns partial input
// alongside errors.
func ParseInvoice(fields map[string]string) (*InvoiceInput, Errors) {
	errs := Errors{}

	customerID := fields[FieldCustomerID]
	if customerID == "" {
		errs[FieldCustomerID] = append(errs[FieldCustomerID], MsgSelectCustomer)
	}

	var cents int64
	amount, err := decimal.NewFromString(fields[FieldAmount])
	if err != nil || !amount.IsPositive() {
		errs[FieldAmount] = append(errs[FieldAmount], MsgAmountTooSmall)
	} else {
		cents = amount.Mul(hundred).Round(0).IntPart()
	}

	status := domain.Status(fields[FieldStatus])
	if status != domain.StatusPending && status != domain.StatusPaid {
		errs[FieldStatus] = append(errs[FieldStatus], MsgSelectStatus)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &InvoiceInput{
		CustomerID: customerID,
		Amount:     cents,
		Status:     status,
	}, nil
}
