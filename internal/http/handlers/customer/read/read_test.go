package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func TestReadCustomerHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение клиента",
			id:   "1",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(1)).Return(&models.Customer{
					ID:    1,
					Email: "alice@example.com",
					Name:  "Alice",
					Role:  models.RoleUser,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"Email":"alice@example.com"`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `"failed to decode id from url"`,
		},
		{
			name: "клиент не найден",
			id:   "77",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(77)).Return(nil, domain.ErrCustomerNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"customer not found"`,
		},
		{
			name: "ошибка сервиса",
			id:   "1",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, int64(1)).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not read customer"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/customers/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
