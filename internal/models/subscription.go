package models

import "time"

// Статусы подписки. Переход единственный: active -> canceled, без реактивации.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Интервалы списания.
const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// Subscription представляет подписку клиента на тарифный план.
// Поле EndDate может быть nil — оно заполняется тогда и только тогда,
// когда подписка отменена.
type Subscription struct {
	ID              int64      // Уникальный идентификатор подписки
	CustomerID      int64      // Идентификатор клиента-владельца
	PlanName        string     // Название тарифного плана
	Price           float64    // Цена за период (>0)
	BillingInterval string     // Интервал списания, monthly или yearly
	StartDate       time.Time  // Дата начала подписки
	EndDate         *time.Time // Дата окончания, только для отменённых
	Status          string     // Статус, active или canceled
}

// DummySubscription используется для приёма данных из JSON-запроса
// на создание подписки.
type DummySubscription struct {
	CustomerID      int64   `json:"customer_id" validate:"required,gt=0"`                        // Клиент
	PlanName        string  `json:"plan_name" validate:"required"`                               // Название плана
	Price           float64 `json:"price" validate:"required,gt=0"`                              // Цена (>0)
	BillingInterval string  `json:"billing_interval" validate:"required,oneof=monthly yearly"`   // Интервал
}
