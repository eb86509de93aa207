// Package process реализует HTTP-обработчик проведения платежа.
//
// Отказ шлюза не является ошибкой сервера: клиент получает результат
// авторизации с кодом причины, а обработка отказа (dunning) выполняется
// внутри бизнес-логики.
package process

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/gateway"
	"github.com/magabrotheeeer/billing-service/internal/http/response"
	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// Handler управляет HTTP-запросами на проведение платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики проведения платежа.
type Service interface {
	ProcessPayment(ctx context.Context, req models.DummyPayment) (gateway.Result, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Провести платеж
// @Description Авторизует платеж через шлюз. При отказе запускается dunning и возвращается результат с причиной.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 200 {object} gateway.Result "Платеж авторизован"
// @Failure 400 {object} gateway.Result "Платеж отклонен"
// @Failure 404 {object} response.ErrorResponse "Клиент или метод оплаты не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.process"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.ProcessPayment(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrPaymentMethodNotFound) {
			log.Error("payment target not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to process payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process payment"))
		return
	}

	if result.Status != gateway.StatusSuccess {
		log.Info("payment declined", slog.String("reason", result.Reason))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, result)
		return
	}

	log.Info("payment authorized", slog.String("transaction_id", result.TransactionID))
	render.JSON(w, r, result)
}
