// Package card содержит утилиты для имитации токенизации платежных карт.
// Полные реквизиты карт нигде не сохраняются: наружу уходят только
// последние четыре цифры и свежесгенерированный непрозрачный токен.
package card

import "github.com/google/uuid"

// NewToken генерирует новый непрозрачный токен платежного метода.
// Токен создаётся заново для каждого метода и не переиспользуется.
func NewToken() string {
	return uuid.New().String()
}

// Last4 возвращает последние четыре цифры номера карты.
// Для номеров короче четырёх символов возвращается номер целиком.
func Last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
