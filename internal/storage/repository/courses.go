package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (string, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, category, created_by, duration, price)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.Category, course.CreatedBy,
		course.Duration, course.Price).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCourse возвращает курс по его ID.
func (s *Storage) ReadCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "storage.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, created_by, duration, price, created_at
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Category,
		&result.CreatedBy, &result.Duration, &result.Price, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCourses возвращает список всех курсов.
func (s *Storage) ListCourses(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, created_by, duration, price, created_at
			  FROM courses
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Category,
			&item.CreatedBy, &item.Duration, &item.Price, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCoursesByUser возвращает курсы из множества подписок пользователя.
func (s *Storage) ListCoursesByUser(ctx context.Context, userUID string) ([]*models.Course, error) {
	const op = "storage.ListCoursesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.category, c.created_by, c.duration, c.price, c.created_at
			  FROM courses c
			  JOIN user_subscriptions us ON us.course_id = c.id
			  WHERE us.user_uid = $1
			  ORDER BY us.created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Category,
			&item.CreatedBy, &item.Duration, &item.Price, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveCourse удаляет курс по ID вместе с его лекциями (каскадно)
// и возвращает количество удалённых строк.
func (s *Storage) RemoveCourse(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
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

// CountStats возвращает агрегированную статистику платформы:
// количество курсов, лекций и пользователей.
func (s *Storage) CountStats(ctx context.Context) (courses, lectures, users int, err error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return 0, 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
				  (SELECT COUNT(*) FROM courses),
				  (SELECT COUNT(*) FROM lectures),
				  (SELECT COUNT(*) FROM users)`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&courses, &lectures, &users); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return courses, lectures, users, nil
}
