package process

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/gateway"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// MockService реализует интерфейс process.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProcessPayment(ctx context.Context, req models.DummyPayment) (gateway.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.Result), args.Error(1)
}

func TestProcessPaymentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "платеж авторизован",
			body: `{"customer_id":1,"payment_method_id":2,"amount":50}`,
			setupMock: func(m *MockService) {
				m.On("ProcessPayment", mock.Anything, mock.MatchedBy(func(req models.DummyPayment) bool {
					return req.CustomerID == 1 && req.PaymentMethodID == 2 && req.Amount == 50
				})).Return(gateway.Result{Status: gateway.StatusSuccess, TransactionID: "4821"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"transaction_id":"4821"`,
		},
		{
			name: "платеж отклонен",
			body: `{"customer_id":1,"payment_method_id":2,"amount":50}`,
			setupMock: func(m *MockService) {
				m.On("ProcessPayment", mock.Anything, mock.Anything).
					Return(gateway.Result{Status: gateway.StatusFailed, Reason: gateway.ReasonInsufficientFunds}, nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"insufficient_funds"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{invalid`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "отрицательная сумма отклоняется валидацией",
			body:           `{"customer_id":1,"payment_method_id":2,"amount":-5}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Amount must be greater than 0`,
		},
		{
			name: "метод оплаты не найден",
			body: `{"customer_id":1,"payment_method_id":99,"amount":50}`,
			setupMock: func(m *MockService) {
				m.On("ProcessPayment", mock.Anything, mock.Anything).
					Return(gateway.Result{}, domain.ErrPaymentMethodNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `payment method not found`,
		},
		{
			name: "ошибка сервиса",
			body: `{"customer_id":1,"payment_method_id":2,"amount":50}`,
			setupMock: func(m *MockService) {
				m.On("ProcessPayment", mock.Anything, mock.Anything).
					Return(gateway.Result{}, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not process payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
