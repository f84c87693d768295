package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// SavePayment сохраняет запись о платеже. Запись ключуется уникальным
// идентификатором сессии провайдера: повторное сохранение той же сессии
// не создаёт дубликат, created == false.
func (s *Storage) SavePayment(ctx context.Context, payment models.Payment) (int, bool, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (provider_session_id, provider_customer_id, user_uid,
			      course_id, amount, currency)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (provider_session_id) DO NOTHING
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.ProviderSessionID, payment.ProviderCustomerID, payment.UserUID,
		payment.CourseID, payment.Amount, payment.Currency).Scan(&newID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return newID, true, nil
}

// ListPayments возвращает платежи пользователя.
func (s *Storage) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_session_id, provider_customer_id, user_uid,
			      course_id, amount, currency, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ProviderSessionID, &p.ProviderCustomerID,
			&p.UserUID, &p.CourseID, &p.Amount, &p.Currency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
