package models

// PaymentMethod представляет сохранённый метод оплаты клиента.
// Полный номер карты никогда не хранится: остаются только последние
// четыре цифры и непрозрачный токен, сгенерированный при привязке.
type PaymentMethod struct {
	ID         int64  // Уникальный идентификатор метода оплаты
	CustomerID int64  // Идентификатор клиента-владельца
	CardLast4  string // Последние 4 цифры карты
	Token      string // Токен платежного метода (имитация токенизации)
}

// DummyPaymentMethod используется для приёма данных из JSON-запроса
// на привязку карты. Номер карты валидируется, но не сохраняется целиком.
type DummyPaymentMethod struct {
	CardNumber string `json:"card_number" validate:"required,numeric,min=13,max=19"` // Полный номер карты
}

// DummyPayment используется для приёма запроса на проведение платежа.
type DummyPayment struct {
	CustomerID      int64   `json:"customer_id" validate:"required,gt=0"`
	PaymentMethodID int64   `json:"payment_method_id" validate:"required,gt=0"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
}
