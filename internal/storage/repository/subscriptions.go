package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (customer_id, plan_name, price, billing_interval,
			      start_date, end_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.CustomerID, sub.PlanName, sub.Price, sub.BillingInterval,
		sub.StartDate, sub.EndDate, sub.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscription возвращает подписку по её ID.
func (s *Storage) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_id, plan_name, price, billing_interval, start_date, end_date, status
			  FROM subscriptions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Subscription
	var endDate sql.NullTime
	if err := row.Scan(&result.ID, &result.CustomerID, &result.PlanName, &result.Price,
		&result.BillingInterval, &result.StartDate, &endDate, &result.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		result.EndDate = &endDate.Time
	}
	return &result, nil
}

// MarkSubscriptionCanceled переводит подписку в статус canceled
// и фиксирует дату окончания. Возвращает количество изменённых строк.
func (s *Storage) MarkSubscriptionCanceled(ctx context.Context, id int64, endDate time.Time) (int64, error) {
	const op = "storage.MarkSubscriptionCanceled"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1, end_date = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, models.SubscriptionStatusCanceled, endDate, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
