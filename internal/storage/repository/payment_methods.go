package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// CreatePaymentMethod сохраняет новый метод оплаты и возвращает его ID.
func (s *Storage) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (int64, error) {
	const op = "storage.CreatePaymentMethod"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_methods (customer_id, card_last4, token)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		method.CustomerID, method.CardLast4, method.Token).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentMethod возвращает метод оплаты по его ID.
func (s *Storage) GetPaymentMethod(ctx context.Context, id int64) (*models.PaymentMethod, error) {
	const op = "storage.GetPaymentMethod"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, card_last4, token
			  FROM payment_methods WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.PaymentMethod
	if err := row.Scan(&result.ID, &result.CustomerID, &result.CardLast4, &result.Token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListPaymentMethods возвращает методы оплаты клиента.
func (s *Storage) ListPaymentMethods(ctx context.Context, customerID int64) ([]*models.PaymentMethod, error) {
	const op = "storage.ListPaymentMethods"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, card_last4, token
			  FROM payment_methods
			  WHERE customer_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentMethod
	for rows.Next() {
		var item models.PaymentMethod
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.CardLast4, &item.Token); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
