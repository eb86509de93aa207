package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/billing-service/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateCustomer создает тестового клиента
func (f *TestDataFactory) CreateCustomer(t *testing.T, email, name, role string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO customers (email, name, role)
		VALUES ($1, $2, $3) RETURNING id`,
		email, name, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePaymentMethod создает тестовый метод оплаты
func (f *TestDataFactory) CreatePaymentMethod(t *testing.T, customerID int64, cardLast4, token string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO payment_methods (customer_id, card_last4, token)
		VALUES ($1, $2, $3) RETURNING id`,
		customerID, cardLast4, token).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку
func (f *TestDataFactory) CreateSubscription(t *testing.T, customerID int64, planName string, price float64,
	interval string, startDate time.Time, status string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(customer_id, plan_name, price, billing_interval, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		customerID, planName, price, interval, startDate, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateInvoice создает тестовый счет
func (f *TestDataFactory) CreateInvoice(t *testing.T, customerID, subscriptionID int64, amount float64,
	status string, dueDate time.Time) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO invoices
		(customer_id, subscription_id, amount, status, due_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		customerID, subscriptionID, amount, status, dueDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifySubscriptionStatus проверяет статус подписки в БД
func (v *TestVerification) VerifySubscriptionStatus(t *testing.T, id int64, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM subscriptions WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyInvoiceStatus проверяет статус счета в БД
func (v *TestVerification) VerifyInvoiceStatus(t *testing.T, id int64, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM invoices WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// GetTestSubscription возвращает стандартные тестовые данные подписки
func GetTestSubscription(customerID int64) models.Subscription {
	return models.Subscription{
		CustomerID:      customerID,
		PlanName:        "premium",
		Price:           29.99,
		BillingInterval: models.IntervalMonthly,
		StartDate:       time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.SubscriptionStatusActive,
	}
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for i := 0; i < 10; i++ {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS invoices CASCADE;
        DROP TABLE IF EXISTS subscriptions CASCADE;
        DROP TABLE IF EXISTS payment_methods CASCADE;
        DROP TABLE IF EXISTS customers CASCADE;

        CREATE TABLE customers (
            id BIGSERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'user'
        );

        CREATE TABLE payment_methods (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers (id),
            card_last4 VARCHAR(4) NOT NULL,
            token VARCHAR(36) NOT NULL
        );

        CREATE TABLE subscriptions (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers (id),
            plan_name TEXT NOT NULL,
            price NUMERIC(12, 2) NOT NULL CHECK (price > 0),
            billing_interval TEXT NOT NULL CHECK (billing_interval IN ('monthly', 'yearly')),
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ,
            status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'canceled'))
        );

        CREATE TABLE invoices (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers (id),
            subscription_id BIGINT NOT NULL REFERENCES subscriptions (id),
            amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'paid', 'failed')),
            due_date TIMESTAMPTZ NOT NULL
        );

        CREATE INDEX idx_payment_methods_customer_id ON payment_methods (customer_id);
        CREATE INDEX idx_subscriptions_customer_id ON subscriptions (customer_id);
        CREATE INDEX idx_invoices_customer_id ON invoices (customer_id);
        CREATE INDEX idx_invoices_subscription_id ON invoices (subscription_id);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
