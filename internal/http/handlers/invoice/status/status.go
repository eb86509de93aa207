// Package status реализует HTTP-обработчик явного перевода счета
// из pending в конечный статус paid или failed.
//
// Сам биллинг эти переходы не инициирует: они выставляются внешним
// вызывающим, например после подтверждения оплаты.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/http/response"
	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// Handler управляет HTTP-запросами на смену статуса счета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики переходов статуса счета.
type Service interface {
	MarkInvoicePaid(ctx context.Context, id int64) error
	MarkInvoiceFailed(ctx context.Context, id int64) error
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
// @Summary Изменить статус счета
// @Description Переводит счет из pending в paid или failed. Другие переходы запрещены.
// @Tags Invoices
// @Accept  json
// @Produce  json
// @Param id path int true "ID счета"
// @Param request body models.DummyInvoiceStatus true "Целевой статус"
// @Success 200 {object} map[string]any "Статус обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Счет не найден"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/{id}/status [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyInvoiceStatus
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

	if req.Status == models.InvoiceStatusPaid {
		err = h.service.MarkInvoicePaid(r.Context(), id)
	} else {
		err = h.service.MarkInvoiceFailed(r.Context(), id)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvoiceNotFound):
			log.Error("invoice not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("invoice not found"))
		case errors.Is(err, domain.ErrInvalidInvoiceStatus):
			log.Error("invalid invoice status transition", slog.Int64("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("invalid invoice status transition"))
		default:
			log.Error("failed to update invoice status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update invoice status"))
		}
		return
	}

	log.Info("success to update invoice status", slog.Int64("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     id,
		"status": req.Status,
	}))
}
