// Package metrics содержит метрики Prometheus для биллинга.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BillingMetrics счётчики основных биллинговых событий.
type BillingMetrics struct {
	paymentsAuthorized     prometheus.Counter
	paymentsDeclined       prometheus.Counter
	invoicesCreated        prometheus.Counter
	subscriptionsCanceled  prometheus.Counter
	notificationsPublished prometheus.Counter
}

// NewBillingMetrics регистрирует метрики биллинга в переданном реестре.
func NewBillingMetrics(registry *prometheus.Registry) *BillingMetrics {
	return &BillingMetrics{
		paymentsAuthorized: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_payments_authorized_total",
			Help: "The total number of authorized payments",
		}),
		paymentsDeclined: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_payments_declined_total",
			Help: "The total number of declined payments",
		}),
		invoicesCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_invoices_created_total",
			Help: "The total number of created invoices",
		}),
		subscriptionsCanceled: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_subscriptions_canceled_total",
			Help: "The total number of canceled subscriptions",
		}),
		notificationsPublished: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_notifications_published_total",
			Help: "The total number of published notifications",
		}),
	}
}

// IncPaymentAuthorized увеличивает счётчик успешных авторизаций.
func (m *BillingMetrics) IncPaymentAuthorized() { m.paymentsAuthorized.Inc() }

// IncPaymentDeclined увеличивает счётчик отказов.
func (m *BillingMetrics) IncPaymentDeclined() { m.paymentsDeclined.Inc() }

// IncInvoiceCreated увеличивает счётчик выставленных счетов.
func (m *BillingMetrics) IncInvoiceCreated() { m.invoicesCreated.Inc() }

// IncSubscriptionCanceled увеличивает счётчик отменённых подписок.
func (m *BillingMetrics) IncSubscriptionCanceled() { m.subscriptionsCanceled.Inc() }

// IncNotificationPublished увеличивает счётчик опубликованных уведомлений.
func (m *BillingMetrics) IncNotificationPublished() { m.notificationsPublished.Inc() }
