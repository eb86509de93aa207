// Package gateway реализует имитацию платежного шлюза.
// Авторизация проходит с фиксированной вероятностью успеха и не имеет
// побочных эффектов: реальный провайдер, таймауты и повторы не используются.
package gateway

import (
	"log/slog"
	"math/rand"
	"strconv"
	"time"
)

// Статусы результата авторизации.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ReasonInsufficientFunds канонический код причины отказа.
const ReasonInsufficientFunds = "insufficient_funds"

// RandomSource источник случайности для шлюза.
// Выносится в интерфейс, чтобы в тестах можно было форсировать
// детерминированный исход авторизации.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// Result результат авторизации платежа. Отказ не является ошибкой:
// он возвращается как обычное значение и обрабатывается вызывающей стороной.
type Result struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"error,omitempty"`
}

// Gateway имитирует платежный шлюз с заданной вероятностью успеха.
type Gateway struct {
	rnd         RandomSource
	successRate float64
	log         *slog.Logger
}

// New создает новый Gateway. successRate задаёт вероятность успешной
// авторизации в диапазоне [0, 1].
func New(rnd RandomSource, successRate float64, log *slog.Logger) *Gateway {
	return &Gateway{
		rnd:         rnd,
		successRate: successRate,
		log:         log,
	}
}

// DefaultSource возвращает источник случайности по умолчанию.
func DefaultSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Authorize выполняет синхронную авторизацию платежа.
// Успех сопровождается четырёхзначным идентификатором транзакции,
// отказ — кодом причины insufficient_funds. История и параметры
// платежа на исход не влияют.
func (g *Gateway) Authorize(token string, amount float64) Result {
	if g.rnd.Float64() < g.successRate {
		txID := strconv.Itoa(1000 + g.rnd.Intn(9000))
		g.log.Info("payment authorized",
			slog.String("transaction_id", txID),
			slog.Float64("amount", amount))
		return Result{Status: StatusSuccess, TransactionID: txID}
	}
	g.log.Info("payment declined",
		slog.String("reason", ReasonInsufficientFunds),
		slog.Float64("amount", amount))
	return Result{Status: StatusFailed, Reason: ReasonInsufficientFunds}
}
