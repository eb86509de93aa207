// Package middlewarectx содержит HTTP middleware биллинга:
// проверку административных прав и ограничение частоты запросов.
//
// AdminOnlyMiddleware определяет вызывающего клиента по заголовку
// X-Customer-ID и пропускает запрос дальше только при наличии у него
// роли администратора. Проверка выполняется через внедрённую
// возможность IsAdmin, а не сравнением строки из запроса.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/http/response"
	"github.com/magabrotheeeer/billing-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CustomerID — ключ идентификатора клиента в контексте.
const CustomerID Key = "customer_id"

// Authorizer описывает проверку административных прав клиента.
type Authorizer interface {
	IsAdmin(ctx context.Context, customerID int64) (bool, error)
}

// AdminOnlyMiddleware возвращает HTTP middleware, пропускающий
// только администраторов. Идентификатор клиента кладётся в контекст.
func AdminOnlyMiddleware(authz Authorizer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnlyMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			customerID, err := strconv.ParseInt(r.Header.Get("X-Customer-ID"), 10, 64)
			if err != nil {
				log.Error("missing or invalid X-Customer-ID header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid X-Customer-ID header"))
				return
			}

			isAdmin, err := authz.IsAdmin(r.Context(), customerID)
			if err != nil {
				if errors.Is(err, domain.ErrCustomerNotFound) {
					log.Error("unknown customer", slog.Int64("customer_id", customerID))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("unknown customer"))
					return
				}
				log.Error("failed to check admin role", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("could not check permissions"))
				return
			}
			if !isAdmin {
				log.Error("access denied", slog.Int64("customer_id", customerID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			ctx := context.WithValue(r.Context(), CustomerID, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
