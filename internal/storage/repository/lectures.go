package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreateLecture вставляет новую лекцию курса и возвращает её ID.
func (s *Storage) CreateLecture(ctx context.Context, lecture models.Lecture) (string, error) {
	const op = "storage.CreateLecture"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lectures (course_id, title, description, position)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		lecture.CourseID, lecture.Title, lecture.Description, lecture.Position).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLecture возвращает лекцию по её ID.
func (s *Storage) ReadLecture(ctx context.Context, id string) (*models.Lecture, error) {
	const op = "storage.ReadLecture"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, position, created_at
			  FROM lectures WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Lecture
	if err := row.Scan(&result.ID, &result.CourseID, &result.Title,
		&result.Description, &result.Position, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListLectures возвращает лекции курса в порядке их позиций.
func (s *Storage) ListLectures(ctx context.Context, courseID string) ([]*models.Lecture, error) {
	const op = "storage.ListLectures"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, position, created_at
			  FROM lectures
			  WHERE course_id = $1
			  ORDER BY position, created_at`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lecture
	for rows.Next() {
		var item models.Lecture
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title,
			&item.Description, &item.Position, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountLectures возвращает количество лекций курса.
func (s *Storage) CountLectures(ctx context.Context, courseID string) (int, error) {
	const op = "storage.CountLectures"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM lectures WHERE course_id = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveLecture удаляет лекцию по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveLecture(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveLecture"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM lectures WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
