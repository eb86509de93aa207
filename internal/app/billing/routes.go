// Package billing предоставляет маршруты для биллингового приложения.
package billing

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	customercreate "github.com/magabrotheeeer/billing-service/internal/http/handlers/customer/create"
	customerread "github.com/magabrotheeeer/billing-service/internal/http/handlers/customer/read"
	"github.com/magabrotheeeer/billing-service/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/billing-service/internal/http/handlers/health"
	invoiceread "github.com/magabrotheeeer/billing-service/internal/http/handlers/invoice/read"
	invoicestatus "github.com/magabrotheeeer/billing-service/internal/http/handlers/invoice/status"
	"github.com/magabrotheeeer/billing-service/internal/http/handlers/payment/process"
	pmcreate "github.com/magabrotheeeer/billing-service/internal/http/handlers/paymentmethod/create"
	subcancel "github.com/magabrotheeeer/billing-service/internal/http/handlers/subscription/cancel"
	subcreate "github.com/magabrotheeeer/billing-service/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/billing-service/internal/http/middlewarectx"
	billingservice "github.com/magabrotheeeer/billing-service/internal/services/billing"
	customerservice "github.com/magabrotheeeer/billing-service/internal/services/customer"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, billingService *billingservice.Service, customerService *customerservice.Service, registry *prometheus.Registry) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	dashboardHandler := dashboard.New(logger, billingService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/customers", customercreate.New(logger, customerService).ServeHTTP)
		r.Get("/customers/{id}", customerread.New(logger, customerService).ServeHTTP)
		r.Post("/customers/{id}/payment_methods", pmcreate.New(logger, customerService).ServeHTTP)

		r.Post("/payments", process.New(logger, billingService).ServeHTTP)

		r.Post("/subscriptions", subcreate.New(logger, billingService).ServeHTTP)
		r.Post("/subscriptions/{id}/cancel", subcancel.New(logger, billingService).ServeHTTP)

		r.Get("/invoices/{id}", invoiceread.New(logger, billingService).ServeHTTP)

		// Группа администратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AdminOnlyMiddleware(customerService, logger))
			r.Post("/invoices/{id}/status", invoicestatus.New(logger, billingService).ServeHTTP)
		})
	})

	// HTML-панель администратора
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AdminOnlyMiddleware(customerService, logger))
		r.Get("/dashboard", dashboardHandler.ServeHTTP)
		r.Get("/invoices/{id}", dashboardHandler.InvoicePage)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
