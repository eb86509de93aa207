package dashboard

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// MockService реализует интерфейс dashboard.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockService) ReadInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestDashboardHandler(t *testing.T) {
	customers := []*models.Customer{
		{ID: 1, Email: "alice@example.com", Name: "Alice", Role: models.RoleAdmin},
		{ID: 2, Email: "bob@example.com", Name: "Bob", Role: models.RoleUser},
	}
	invoices := []*models.Invoice{
		{ID: 100, CustomerID: 2, SubscriptionID: 10, Amount: 29.99, Status: models.InvoiceStatusPending,
			DueDate: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("панель показывает клиентов и счета", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ListCustomers", mock.Anything).Return(customers, nil).Once()
		mockService.On("ListInvoices", mock.Anything).Return(invoices, nil).Once()

		handler := New(newNoopLogger(), mockService)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, "alice@example.com")
		assert.Contains(t, body, "bob@example.com")
		assert.Contains(t, body, "$29.99")
		assert.Contains(t, body, `href="/invoices/100"`)

		mockService.AssertExpectations(t)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ListCustomers", mock.Anything).Return(nil, assert.AnError).Once()

		handler := New(newNoopLogger(), mockService)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestInvoicePageHandler(t *testing.T) {
	invoice := &models.Invoice{
		ID:             100,
		CustomerID:     2,
		SubscriptionID: 10,
		Amount:         29.99,
		Status:         models.InvoiceStatusPending,
		DueDate:        time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "страница счета",
			id:   "100",
			setupMock: func(m *MockService) {
				m.On("ReadInvoice", mock.Anything, int64(100)).Return(invoice, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Invoice #100",
		},
		{
			name:           "некорректный id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "bad invoice id",
		},
		{
			name: "счет не найден",
			id:   "777",
			setupMock: func(m *MockService) {
				m.On("ReadInvoice", mock.Anything, int64(777)).Return(nil, domain.ErrInvoiceNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "invoice not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/invoices/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.InvoicePage(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
