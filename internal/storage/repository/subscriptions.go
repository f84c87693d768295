package repository

import (
	"context"
	"fmt"
)

// AddSubscription добавляет курс в множество подписок пользователя.
// Вставка идемпотентна: повторное добавление того же курса не создаёт
// дубликат и возвращает 0 затронутых строк.
func (s *Storage) AddSubscription(ctx context.Context, userUID, courseID string) (int, error) {
	const op = "storage.AddSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_subscriptions (user_uid, course_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, course_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, userUID, courseID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions возвращает идентификаторы курсов, на которые подписан пользователь.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]string, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT course_id FROM user_subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var courseID string
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, courseID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// IsSubscribed проверяет наличие курса в множестве подписок пользователя.
func (s *Storage) IsSubscribed(ctx context.Context, userUID, courseID string) (bool, error) {
	const op = "storage.IsSubscribed"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM user_subscriptions
				  WHERE user_uid = $1 AND course_id = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
