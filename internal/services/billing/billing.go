// Package billing содержит бизнес-логику биллинга: создание и отмену
// подписок, выставление счетов, проведение платежей и явные переходы
// статусов счета.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/gateway"
	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
	"github.com/magabrotheeeer/billing-service/internal/metrics"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// invoiceGracePeriod срок оплаты счета с момента выставления.
const invoiceGracePeriod = 7 * 24 * time.Hour

// prorationCycleDays длина расчётного цикла для пророции.
// Цикл фиксированный и не зависит от интервала подписки,
// в том числе для годовых планов.
const prorationCycleDays = 30

// Repository определяет методы хранилища, используемые биллингом.
type Repository interface {
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	GetPaymentMethod(ctx context.Context, id int64) (*models.PaymentMethod, error)
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	MarkSubscriptionCanceled(ctx context.Context, id int64, endDate time.Time) (int64, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (int64, error)
	GetInvoice(ctx context.Context, id int64) (*models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, status string) (int64, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)
}

// Notifier описывает отправку уведомлений клиенту.
// Ошибка отправки никогда не откатывает основную операцию.
type Notifier interface {
	Notify(ctx context.Context, msg models.Notification) error
}

// Dunning описывает обработку отклонённых платежей.
type Dunning interface {
	HandleFailedPayment(ctx context.Context, customer *models.Customer, method *models.PaymentMethod, amount float64)
}

// Gateway описывает авторизацию платежа во внешнем шлюзе.
type Gateway interface {
	Authorize(token string, amount float64) gateway.Result
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует биллинговые операции.
type Service struct {
	repo     Repository
	gw       Gateway
	dunning  Dunning
	notifier Notifier
	cache    Cache
	metrics  *metrics.BillingMetrics
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, gw Gateway, dunning Dunning, notifier Notifier, cache Cache, m *metrics.BillingMetrics, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		gw:       gw,
		dunning:  dunning,
		notifier: notifier,
		cache:    cache,
		metrics:  m,
		log:      log,
	}
}

// CreateSubscription создает активную подписку и выставляет ровно один
// счет на полную стоимость со сроком оплаты через семь дней. Клиенту
// отправляется уведомление о новом счете (best-effort).
func (s *Service) CreateSubscription(ctx context.Context, req models.DummySubscription) (*models.Subscription, *models.Invoice, error) {
	if req.BillingInterval != models.IntervalMonthly && req.BillingInterval != models.IntervalYearly {
		return nil, nil, fmt.Errorf("%w: unknown billing interval %q", domain.ErrInvalidInput, req.BillingInterval)
	}
	if req.Price <= 0 {
		return nil, nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}

	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		CustomerID:      customer.ID,
		PlanName:        req.PlanName,
		Price:           req.Price,
		BillingInterval: req.BillingInterval,
		StartDate:       now,
		Status:          models.SubscriptionStatusActive,
	}
	subID, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	sub.ID = subID

	invoice := models.Invoice{
		CustomerID:     customer.ID,
		SubscriptionID: subID,
		Amount:         req.Price,
		Status:         models.InvoiceStatusPending,
		DueDate:        now.Add(invoiceGracePeriod),
	}
	invoiceID, err := s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return nil, nil, err
	}
	invoice.ID = invoiceID
	s.metrics.IncInvoiceCreated()

	s.log.Info("created new subscription",
		slog.Int64("subscription_id", subID),
		slog.Int64("invoice_id", invoiceID),
		slog.String("plan", req.PlanName))

	msg := models.Notification{
		Email:   customer.Email,
		Subject: fmt.Sprintf("Invoice #%d", invoiceID),
		Body: fmt.Sprintf("New invoice for %s. Amount: $%.2f, Due: %s",
			sub.PlanName, invoice.Amount, invoice.DueDate.Format("02 Jan 2006")),
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Error("failed to send invoice notification", sl.Err(err))
	}

	return &sub, &invoice, nil
}

// CancelSubscription отменяет подписку: статус и дата окончания
// сохраняются до возврата из метода. Если в расчётном 30-дневном цикле
// остались дни, клиенту отправляется уведомление о пропорциональном
// возврате; запись о движении денег не создаётся. Повторная отмена
// запрещена.
func (s *Service) CancelSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.SubscriptionStatusCanceled {
		return nil, domain.ErrSubscriptionCanceled
	}

	now := time.Now().UTC()
	if _, err := s.repo.MarkSubscriptionCanceled(ctx, id, now); err != nil {
		return nil, err
	}
	sub.Status = models.SubscriptionStatusCanceled
	sub.EndDate = &now
	s.metrics.IncSubscriptionCanceled()

	s.log.Info("canceled subscription", slog.Int64("id", id))

	elapsedDays := int(now.Sub(sub.StartDate).Hours() / 24)
	daysRemaining := prorationCycleDays - elapsedDays
	if daysRemaining > 0 {
		proratedAmount := float64(daysRemaining) / prorationCycleDays * sub.Price

		customer, err := s.repo.GetCustomer(ctx, sub.CustomerID)
		if err != nil {
			s.log.Error("failed to load customer for refund notification", sl.Err(err))
			return sub, nil
		}
		msg := models.Notification{
			Email:   customer.Email,
			Subject: "Subscription Canceled",
			Body: fmt.Sprintf("Your subscription has been canceled. Prorated refund: $%.2f",
				proratedAmount),
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.log.Error("failed to send refund notification", sl.Err(err))
		}
	}

	return sub, nil
}

// ProcessPayment проводит платеж через шлюз. Отказ не является ошибкой:
// он возвращается как значение, а обработка передаётся в dunning.
func (s *Service) ProcessPayment(ctx context.Context, req models.DummyPayment) (gateway.Result, error) {
	method, err := s.repo.GetPaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		return gateway.Result{}, err
	}
	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return gateway.Result{}, err
	}

	result := s.gw.Authorize(method.Token, req.Amount)
	if result.Status == gateway.StatusSuccess {
		s.metrics.IncPaymentAuthorized()
		return result, nil
	}

	s.metrics.IncPaymentDeclined()
	s.dunning.HandleFailedPayment(ctx, customer, method, req.Amount)
	return result, nil
}

// ReadInvoice возвращает счет по ID, используя кеш или репозиторий.
func (s *Service) ReadInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	var result *models.Invoice
	cacheKey := fmt.Sprintf("invoice:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache invoice", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// ListCustomers возвращает всех клиентов.
func (s *Service) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// ListInvoices возвращает все счета.
func (s *Service) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// MarkInvoicePaid переводит счет из pending в paid.
func (s *Service) MarkInvoicePaid(ctx context.Context, id int64) error {
	return s.markInvoice(ctx, id, models.InvoiceStatusPaid)
}

// MarkInvoiceFailed переводит счет из pending в failed.
func (s *Service) MarkInvoiceFailed(ctx context.Context, id int64) error {
	return s.markInvoice(ctx, id, models.InvoiceStatusFailed)
}

func (s *Service) markInvoice(ctx context.Context, id int64, status string) error {
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != models.InvoiceStatusPending {
		return domain.ErrInvalidInvoiceStatus
	}

	affected, err := s.repo.UpdateInvoiceStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidInvoiceStatus
	}

	cacheKey := fmt.Sprintf("invoice:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate invoice cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("invoice status updated", slog.Int64("id", id), slog.String("status", status))
	return nil
}
