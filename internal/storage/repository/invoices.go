package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// CreateInvoice вставляет новый счет и возвращает его ID.
func (s *Storage) CreateInvoice(ctx context.Context, invoice models.Invoice) (int64, error) {
	const op = "storage.CreateInvoice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO invoices (customer_id, subscription_id, amount, status, due_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		invoice.CustomerID, invoice.SubscriptionID, invoice.Amount,
		invoice.Status, invoice.DueDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetInvoice возвращает счет по его ID.
func (s *Storage) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	const op = "storage.GetInvoice"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, subscription_id, amount, status, due_date
			  FROM invoices WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Invoice
	if err := row.Scan(&result.ID, &result.CustomerID, &result.SubscriptionID,
		&result.Amount, &result.Status, &result.DueDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateInvoiceStatus обновляет статус счета, только если текущий статус pending.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateInvoiceStatus(ctx context.Context, id int64, status string) (int64, error) {
	const op = "storage.UpdateInvoiceStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE invoices
			  SET status = $1
			  WHERE id = $2 AND status = $3`
	result, err := s.DB.ExecContext(ctx, query, status, id, models.InvoiceStatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListInvoices возвращает список всех счетов.
func (s *Storage) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	const op = "storage.ListInvoices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, subscription_id, amount, status, due_date
			  FROM invoices
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Invoice
	for rows.Next() {
		var item models.Invoice
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.SubscriptionID,
			&item.Amount, &item.Status, &item.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
