package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// TestCreateCustomer проверяет создание клиента и обработку дубликата email
func TestCreateCustomer(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateCustomer(ctx, models.Customer{
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  "user",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := storage.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "user", got.Role)

	// Повторная регистрация с тем же email
	_, err = storage.CreateCustomer(ctx, models.Customer{
		Email: "alice@example.com",
		Name:  "Another Alice",
		Role:  "user",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

// TestGetCustomer_NotFound проверяет ошибку на несуществующем клиенте
func TestGetCustomer_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetCustomer(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

// TestPaymentMethods проверяет создание и чтение методов оплаты
func TestPaymentMethods(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	customerID := factory.CreateCustomer(t, "bob@example.com", "Bob", "user")

	id, err := storage.CreatePaymentMethod(ctx, models.PaymentMethod{
		CustomerID: customerID,
		CardLast4:  "4242",
		Token:      uuid.NewString(),
	})
	require.NoError(t, err)

	got, err := storage.GetPaymentMethod(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, "4242", got.CardLast4)
	assert.NotEmpty(t, got.Token)

	factory.CreatePaymentMethod(t, customerID, "1111", uuid.NewString())

	methods, err := storage.ListPaymentMethods(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, methods, 2)

	_, err = storage.GetPaymentMethod(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrPaymentMethodNotFound)
}

// TestSubscriptionLifecycle проверяет создание, чтение и отмену подписки
func TestSubscriptionLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)
	ctx := context.Background()

	customerID := factory.CreateCustomer(t, "carol@example.com", "Carol", "user")

	subID, err := storage.CreateSubscription(ctx, GetTestSubscription(customerID))
	require.NoError(t, err)

	got, err := storage.GetSubscription(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, "premium", got.PlanName)
	assert.InDelta(t, 29.99, got.Price, 0.001)
	assert.Equal(t, models.IntervalMonthly, got.BillingInterval)
	assert.Equal(t, models.SubscriptionStatusActive, got.Status)
	assert.Nil(t, got.EndDate)

	endDate := time.Now().UTC()
	affected, err := storage.MarkSubscriptionCanceled(ctx, subID, endDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	verification.VerifySubscriptionStatus(t, subID, models.SubscriptionStatusCanceled)

	got, err = storage.GetSubscription(ctx, subID)
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)
	assert.WithinDuration(t, endDate, *got.EndDate, time.Second)

	// Повторная отмена уже отмененной подписки не затрагивает строк
	affected, err = storage.MarkSubscriptionCanceled(ctx, subID, endDate)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	_, err = storage.GetSubscription(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}

// TestInvoiceStatusTransitions проверяет переходы статусов счета
func TestInvoiceStatusTransitions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)
	ctx := context.Background()

	customerID := factory.CreateCustomer(t, "dave@example.com", "Dave", "user")
	subID := factory.CreateSubscription(t, customerID, "basic", 9.99, models.IntervalMonthly,
		time.Now().UTC(), models.SubscriptionStatusActive)

	dueDate := time.Now().UTC().Add(7 * 24 * time.Hour)
	invoiceID, err := storage.CreateInvoice(ctx, models.Invoice{
		CustomerID:     customerID,
		SubscriptionID: subID,
		Amount:         9.99,
		Status:         models.InvoiceStatusPending,
		DueDate:        dueDate,
	})
	require.NoError(t, err)

	got, err := storage.GetInvoice(ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, got.Status)
	assert.InDelta(t, 9.99, got.Amount, 0.001)
	assert.WithinDuration(t, dueDate, got.DueDate, time.Second)

	affected, err := storage.UpdateInvoiceStatus(ctx, invoiceID, models.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	verification.VerifyInvoiceStatus(t, invoiceID, models.InvoiceStatusPaid)

	// Счет уже в конечном статусе, повторный перевод не затрагивает строк
	affected, err = storage.UpdateInvoiceStatus(ctx, invoiceID, models.InvoiceStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	verification.VerifyInvoiceStatus(t, invoiceID, models.InvoiceStatusPaid)

	_, err = storage.GetInvoice(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// TestListCustomersAndInvoices проверяет выборки для админской панели
func TestListCustomersAndInvoices(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	firstID := factory.CreateCustomer(t, "erin@example.com", "Erin", "admin")
	secondID := factory.CreateCustomer(t, "frank@example.com", "Frank", "user")

	subID := factory.CreateSubscription(t, firstID, "premium", 29.99, models.IntervalMonthly,
		time.Now().UTC(), models.SubscriptionStatusActive)
	factory.CreateInvoice(t, firstID, subID, 29.99, models.InvoiceStatusPending,
		time.Now().UTC().Add(7*24*time.Hour))
	factory.CreateInvoice(t, firstID, subID, 29.99, models.InvoiceStatusPaid,
		time.Now().UTC().Add(7*24*time.Hour))

	customers, err := storage.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, firstID, customers[0].ID)
	assert.Equal(t, secondID, customers[1].ID)

	invoices, err := storage.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)
}

// TestCheckDatabaseReady проверяет доступность БД
func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := CheckDatabaseReady(storage)
	assert.NoError(t, err)
}
