package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/billing-service/internal/domain"
	"github.com/magabrotheeeer/billing-service/internal/models"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolation = "23505"

// CreateCustomer сохраняет нового клиента и возвращает его ID.
// Повторный email приводит к domain.ErrDuplicateEmail.
func (s *Storage) CreateCustomer(ctx context.Context, customer models.Customer) (int64, error) {
	const op = "storage.CreateCustomer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO customers (email, name, role)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		customer.Email, customer.Name, customer.Role).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCustomer возвращает клиента по его ID.
func (s *Storage) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "storage.GetCustomer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, role
			  FROM customers WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Customer
	if err := row.Scan(&result.ID, &result.Email, &result.Name, &result.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCustomers возвращает список всех клиентов.
func (s *Storage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	const op = "storage.ListCustomers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, role
			  FROM customers
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Customer
	for rows.Next() {
		var item models.Customer
		if err := rows.Scan(&item.ID, &item.Email, &item.Name, &item.Role); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
