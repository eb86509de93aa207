// Package models содержит доменные структуры биллинга: клиентов, методы оплаты,
// подписки и счета, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Роли клиентов.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Customer представляет клиента биллинговой системы.
// Клиент является корневым агрегатом: методы оплаты, подписки и счета
// всегда ссылаются на него через CustomerID.
type Customer struct {
	ID    int64  // Уникальный идентификатор клиента
	Email string // Электронная почта (уникальная)
	Name  string // Отображаемое имя
	Role  string // Роль клиента, admin или user
}

// DummyCustomer используется для приёма данных из JSON-запроса
// на создание клиента.
type DummyCustomer struct {
	Email string `json:"email" validate:"required,email"`            // Электронная почта
	Name  string `json:"name"`                                       // Имя (опционально)
	Role  string `json:"role" validate:"omitempty,oneof=admin user"` // Роль, по умолчанию user
}
