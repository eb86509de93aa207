// Package notify реализует публикацию исходящих уведомлений в RabbitMQ.
// Доставка best-effort: вызывающая сторона логирует ошибку публикации
// и продолжает основную операцию.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/billing-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/billing-service/internal/metrics"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// routingKeyBilling ключ маршрутизации биллинговых уведомлений.
const routingKeyBilling = "billing"

// AMQPNotifier публикует уведомления в обменник notifications.
type AMQPNotifier struct {
	ch      *amqp.Channel
	metrics *metrics.BillingMetrics
	log     *slog.Logger
}

// New создает новый AMQPNotifier.
func New(ch *amqp.Channel, m *metrics.BillingMetrics, log *slog.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		ch:      ch,
		metrics: m,
		log:     log,
	}
}

// Notify публикует уведомление в очередь.
func (n *AMQPNotifier) Notify(ctx context.Context, msg models.Notification) error {
	const op = "notify.Notify"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := rabbitmq.PublishMessage(n.ch, rabbitmq.NotificationsExchange, routingKeyBilling, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n.metrics.IncNotificationPublished()
	n.log.Info("notification published",
		slog.String("email", msg.Email),
		slog.String("subject", msg.Subject))
	return nil
}
