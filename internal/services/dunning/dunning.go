// Package dunning содержит обработку неуспешных платежей.
//
// Обработчик вычисляет дату повторной попытки и отправляет клиенту
// уведомление с просьбой обновить метод оплаты. Расписание повторов
// нигде не сохраняется и повторное списание не выполняется; эскалация
// после нескольких отказов не реализована.
package dunning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// retryDelay задержка до повторной попытки списания.
const retryDelay = 48 * time.Hour

// retryDateLayout формат даты повтора в письме клиенту.
const retryDateLayout = "02 Jan 2006"

// Notifier описывает отправку уведомлений клиенту.
type Notifier interface {
	Notify(ctx context.Context, msg models.Notification) error
}

// Service реализует обработку отказов в оплате.
type Service struct {
	notifier Notifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		notifier: notifier,
		log:      log,
	}
}

// HandleFailedPayment обрабатывает отклонённый платеж: вычисляет дату
// повторной попытки (через двое суток) и отправляет клиенту ровно одно
// уведомление. Метод никогда не возвращает ошибку и не прерывает
// вызывающую операцию: сбой отправки только логируется.
func (s *Service) HandleFailedPayment(ctx context.Context, customer *models.Customer, method *models.PaymentMethod, amount float64) {
	retryDate := time.Now().UTC().Add(retryDelay)

	msg := models.Notification{
		Email:   customer.Email,
		Subject: "Payment Failed",
		Body: fmt.Sprintf(
			"Payment of $%.2f failed. We'll retry on %s. Please update your payment method.",
			amount, retryDate.Format(retryDateLayout)),
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Error("failed to send dunning notification", sl.Err(err))
	}

	s.log.Info("scheduled payment retry",
		slog.String("email", customer.Email),
		slog.String("card_last4", method.CardLast4),
		slog.Time("retry_date", retryDate))
}
