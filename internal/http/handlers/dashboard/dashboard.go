// Package dashboard отдает минимальную административную HTML-панель:
// список клиентов со счетами и страницу отдельного счета.
package dashboard

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

const dashboardTemplate = `<!DOCTYPE html>
<html>
<head><title>Billing Dashboard</title></head>
<body>
<h1>Billing Dashboard</h1>
<h2>Customers</h2>
<table border="1" cellpadding="4">
<tr><th>ID</th><th>Email</th><th>Name</th><th>Role</th></tr>
{{range .Customers}}<tr><td>{{.ID}}</td><td>{{.Email}}</td><td>{{.Name}}</td><td>{{.Role}}</td></tr>
{{end}}</table>
<h2>Invoices</h2>
<table border="1" cellpadding="4">
<tr><th>ID</th><th>Customer</th><th>Subscription</th><th>Amount</th><th>Status</th><th>Due</th></tr>
{{range .Invoices}}<tr><td><a href="/invoices/{{.ID}}">{{.ID}}</a></td><td>{{.CustomerID}}</td><td>{{.SubscriptionID}}</td><td>${{printf "%.2f" .Amount}}</td><td>{{.Status}}</td><td>{{.DueDate.Format "02 Jan 2006"}}</td></tr>
{{end}}</table>
</body>
</html>`

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head><title>Invoice #{{.ID}}</title></head>
<body>
<h1>Invoice #{{.ID}}</h1>
<p>Customer: {{.CustomerID}}</p>
<p>Subscription: {{.SubscriptionID}}</p>
<p>Amount: ${{printf "%.2f" .Amount}}</p>
<p>Status: {{.Status}}</p>
<p>Due date: {{.DueDate.Format "02 Jan 2006"}}</p>
<p><a href="/dashboard">Back to dashboard</a></p>
</body>
</html>`

// Handler управляет HTTP-запросами административной панели.
type Handler struct {
	log     *slog.Logger
	service Service

	dashboardTmpl *template.Template
	invoiceTmpl   *template.Template
}

// Service описывает данные, которые панель читает из биллинга.
type Service interface {
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)
	ReadInvoice(ctx context.Context, id int64) (*models.Invoice, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		dashboardTmpl: template.Must(template.New("dashboard").Parse(dashboardTemplate)),
		invoiceTmpl:   template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

type dashboardData struct {
	Customers []*models.Customer
	Invoices  []*models.Invoice
}

// ServeHTTP отдает сводную HTML-страницу панели.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		log.Error("failed to list customers", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		log.Error("failed to list invoices", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.dashboardTmpl.Execute(w, dashboardData{Customers: customers, Invoices: invoices}); err != nil {
		log.Error("failed to render dashboard", sl.Err(err))
	}
}

// InvoicePage отдает HTML-страницу одного счета.
func (h *Handler) InvoicePage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.invoice"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		http.Error(w, "bad invoice id", http.StatusBadRequest)
		return
	}

	invoice, err := h.service.ReadInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			log.Error("invoice not found", slog.Int64("id", id))
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		log.Error("failed to read invoice", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.invoiceTmpl.Execute(w, invoice); err != nil {
		log.Error("failed to render invoice page", sl.Err(err))
	}
}
