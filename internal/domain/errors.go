// Package domain содержит общие ошибки предметной области.
package domain

import "errors"

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrCustomerNotFound клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrPaymentMethodNotFound метод оплаты не найден
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrSubscriptionNotFound подписка не найдена
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvoiceNotFound счет не найден
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrDuplicateEmail клиент с таким email уже существует
	ErrDuplicateEmail = errors.New("customer email already exists")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSubscriptionCanceled подписка уже отменена
	ErrSubscriptionCanceled = errors.New("subscription already canceled")

	// ErrInvalidInvoiceStatus недопустимый переход статуса счета
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status transition")
)
