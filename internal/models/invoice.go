package models

import "time"

// Статусы счета. Жизненный цикл: pending -> paid либо pending -> failed.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusFailed  = "failed"
)

// Invoice представляет счет, выставленный клиенту по подписке.
// Счет создаётся один раз на биллинговое событие (создание подписки)
// со сроком оплаты через фиксированный льготный период.
type Invoice struct {
	ID             int64     // Уникальный идентификатор счета
	CustomerID     int64     // Идентификатор клиента
	SubscriptionID int64     // Идентификатор подписки
	Amount         float64   // Сумма счета (>0)
	Status         string    // Статус: pending, paid или failed
	DueDate        time.Time // Срок оплаты
}

// DummyInvoiceStatus используется для приёма запроса на явный перевод
// счета из pending в конечный статус.
type DummyInvoiceStatus struct {
	Status string `json:"status" validate:"required,oneof=paid failed"` // Целевой статус
}
