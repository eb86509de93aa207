// Package customer содержит бизнес-логику работы с клиентами
// и их методами оплаты, включая кеширование и проверку прав.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-service/internal/lib/card"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// Repository определяет методы для работы с клиентами в хранилище.
type Repository interface {
	// CreateCustomer добавляет нового клиента и возвращает его ID.
	CreateCustomer(ctx context.Context, customer models.Customer) (int64, error)
	// GetCustomer возвращает клиента по ID.
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	// CreatePaymentMethod добавляет метод оплаты и возвращает его ID.
	CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с клиентами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Register создает нового клиента и возвращает его ID.
// Роль по умолчанию — user.
func (s *Service) Register(ctx context.Context, req models.DummyCustomer) (int64, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	customer := models.Customer{
		Email: req.Email,
		Name:  req.Name,
		Role:  role,
	}

	id, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return 0, err
	}

	s.log.Info("registered new customer", slog.Int64("id", id), slog.String("email", req.Email))
	return id, nil
}

// Get возвращает клиента по ID, используя кеш или репозиторий.
func (s *Service) Get(ctx context.Context, id int64) (*models.Customer, error) {
	var result *models.Customer
	cacheKey := fmt.Sprintf("customer:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache customer", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// AddPaymentMethod привязывает карту к клиенту. Сохраняются только
// последние четыре цифры и свежий токен, номер карты не хранится.
func (s *Service) AddPaymentMethod(ctx context.Context, customerID int64, req models.DummyPaymentMethod) (*models.PaymentMethod, error) {
	if _, err := s.repo.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	method := models.PaymentMethod{
		CustomerID: customerID,
		CardLast4:  card.Last4(req.CardNumber),
		Token:      card.NewToken(),
	}

	id, err := s.repo.CreatePaymentMethod(ctx, method)
	if err != nil {
		return nil, err
	}
	method.ID = id

	s.log.Info("added payment method",
		slog.Int64("id", id),
		slog.Int64("customer_id", customerID),
		slog.String("card_last4", method.CardLast4))
	return &method, nil
}

// IsAdmin проверяет, обладает ли клиент правами администратора.
func (s *Service) IsAdmin(ctx context.Context, customerID int64) (bool, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return false, err
	}
	return customer.Role == models.RoleAdmin, nil
}
