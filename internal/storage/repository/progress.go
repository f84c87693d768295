package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreateProgress заводит запись прогресса для пары (пользователь, курс).
// На пару существует не больше одной записи, повторный вызов не создаёт дубликат.
func (s *Storage) CreateProgress(ctx context.Context, userUID, courseID string) (int, error) {
	const op = "storage.CreateProgress"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO progress (user_uid, course_id)
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

// ReadProgress возвращает запись прогресса пары (пользователь, курс)
// вместе с множеством завершённых лекций.
func (s *Storage) ReadProgress(ctx context.Context, userUID, courseID string) (*models.Progress, error) {
	const op = "storage.ReadProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, created_at
			  FROM progress
			  WHERE user_uid = $1 AND course_id = $2`
	row := s.DB.QueryRowContext(ctx, query, userUID, courseID)

	var result models.Progress
	if err := row.Scan(&result.ID, &result.UserUID, &result.CourseID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lecturesQuery := `SELECT lecture_id FROM progress_lectures
					  WHERE progress_id = $1
					  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, lecturesQuery, result.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var lectureID string
		if err := rows.Scan(&lectureID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.CompletedLectures = append(result.CompletedLectures, lectureID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// AddCompletedLecture добавляет лекцию в множество завершённых.
// Вставка идемпотентна: повторное завершение той же лекции возвращает
// 0 затронутых строк.
func (s *Storage) AddCompletedLecture(ctx context.Context, progressID int, lectureID string) (int, error) {
	const op = "storage.AddCompletedLecture"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO progress_lectures (progress_id, lecture_id)
			  VALUES ($1, $2)
			  ON CONFLICT (progress_id, lecture_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, progressID, lectureID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
