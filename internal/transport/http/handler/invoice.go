package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/rishabhkalra96/invoice-dashboard/internal/form"
	"github.com/rishabhkalra96/invoice-dashboard/internal/metrics"
	"github.com/rishabhkalra96/invoice-dashboard/internal/usecase"
	"github.com/rishabhkalra96/invoice-dashboard/internal/viewcache"
	"github.com/shopspring/decimal"
)

const htmlContentType = "text/html; charset=utf-8"

// invoiceUsecaser is the subset of InvoiceUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type invoiceUsecaser interface {
	Create(ctx context.Context, fields map[string]string) usecase.Outcome
	Update(ctx context.Context, id string, fields map[string]string) usecase.Outcome
	Delete(ctx context.Context, id string) usecase.Outcome
	List(ctx context.Context) ([]domain.InvoiceSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	Customers(ctx context.Context) ([]domain.Customer, error)
}

type InvoiceHandler struct {
	invoices invoiceUsecaser
	cache    viewcache.Cache
	tmpl     *template.Template
	logger   *slog.Logger
}

func NewInvoiceHandler(invoices invoiceUsecaser, cache viewcache.Cache, tmpl *template.Template, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		cache:    cache,
		tmpl:     tmpl,
		logger:   logger.With("component", "invoice_handler"),
	}
}

type listView struct {
	Invoices []domain.InvoiceSummary
}

type formView struct {
	Title     string
	Action    string
	Submit    string
	Customers []domain.Customer
	Values    map[string]string
	Errors    form.Errors
	Message   string
}

// GET /dashboard/invoices
// Serves the cached rendering when present; otherwise renders from
// storage and stores the result under the view's path.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := h.cache.Get(ctx, usecase.InvoiceListPath)
	if err == nil {
		metrics.ViewCacheRequestsTotal.WithLabelValues("hit").Inc()
		c.Data(http.StatusOK, htmlContentType, body)
		return
	}
	if !errors.Is(err, viewcache.ErrMiss) {
		h.logger.WarnContext(ctx, "view cache get", "error", err)
	}
	metrics.ViewCacheRequestsTotal.WithLabelValues("miss").Inc()

	invoices, err := h.invoices.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list invoices", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": errInternalServer})
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "invoices.html", listView{Invoices: invoices}); err != nil {
		h.logger.ErrorContext(ctx, "render invoice list", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": errInternalServer})
		return
	}

	if err := h.cache.Set(ctx, usecase.InvoiceListPath, buf.Bytes()); err != nil {
		h.logger.WarnContext(ctx, "view cache set", "error", err)
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// GET /dashboard/invoices/create
func (h *InvoiceHandler) ShowCreate(c *gin.Context) {
	view := h.createView(nil)
	view.Customers = h.customerOptions(c)
	c.HTML(http.StatusOK, "invoice_form.html", view)
}

// POST /dashboard/invoices/create
func (h *InvoiceHandler) Create(c *gin.Context) {
	fields := invoiceFields(c)
	outcome := h.invoices.Create(c.Request.Context(), fields)
	h.finishMutation(c, outcome, h.createView(fields))
}

// GET /dashboard/invoices/:id/edit
func (h *InvoiceHandler) ShowEdit(c *gin.Context) {
	id := c.Param("id")

	inv, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", nil)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get invoice", "invoice_id", id, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": errInternalServer})
		return
	}

	view := h.editView(id, map[string]string{
		form.FieldCustomerID: inv.CustomerID,
		form.FieldAmount:     decimal.New(inv.Amount, -2).StringFixed(2),
		form.FieldStatus:     string(inv.Status),
	})
	view.Customers = h.customerOptions(c)
	c.HTML(http.StatusOK, "invoice_form.html", view)
}

// POST /dashboard/invoices/:id/edit
// The id is route-derived; the form never carries it.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	fields := invoiceFields(c)
	outcome := h.invoices.Update(c.Request.Context(), id, fields)
	h.finishMutation(c, outcome, h.editView(id, fields))
}

// POST /dashboard/invoices/:id/delete
func (h *InvoiceHandler) Delete(c *gin.Context) {
	outcome := h.invoices.Delete(c.Request.Context(), c.Param("id"))
	if outcome.Navigate != "" {
		c.Redirect(http.StatusSeeOther, outcome.Navigate)
		return
	}
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": outcome.Failure.Message})
}

// finishMutation maps a mutation outcome onto the HTTP response: a
// navigation becomes a redirect, a failure re-renders the form with the
// submitted values and inline errors.
func (h *InvoiceHandler) finishMutation(c *gin.Context, outcome usecase.Outcome, view formView) {
	if outcome.Navigate != "" {
		c.Redirect(http.StatusSeeOther, outcome.Navigate)
		return
	}

	view.Customers = h.customerOptions(c)
	view.Errors = outcome.Failure.FieldErrors
	view.Message = outcome.Failure.Message

	status := http.StatusUnprocessableEntity
	if outcome.Failure.FieldErrors == nil {
		status = http.StatusInternalServerError
	}
	c.HTML(status, "invoice_form.html", view)
}

func (h *InvoiceHandler) createView(values map[string]string) formView {
	if values == nil {
		values = map[string]string{}
	}
	return formView{
		Title:  "Create Invoice",
		Action: "/dashboard/invoices/create",
		Submit: "Create Invoice",
		Values: values,
	}
}

func (h *InvoiceHandler) editView(id string, values map[string]string) formView {
	return formView{
		Title:  "Edit Invoice",
		Action: "/dashboard/invoices/" + id + "/edit",
		Submit: "Edit Invoice",
		Values: values,
	}
}

// customerOptions loads the customer select options. A failure here only
// degrades the re-rendered form, so it is logged and swallowed.
func (h *InvoiceHandler) customerOptions(c *gin.Context) []domain.Customer {
	customers, err := h.invoices.Customers(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list customers", "error", err)
		return nil
	}
	return customers
}

func invoiceFields(c *gin.Context) map[string]string {
	return map[string]string{
		form.FieldCustomerID: c.PostForm(form.FieldCustomerID),
		form.FieldAmount:     c.PostForm(form.FieldAmount),
		form.FieldStatus:     c.PostForm(form.FieldStatus),
	}
}
