// Package admin содержит бизнес-логику административных операций:
// управление каталогом, статистику платформы и смену ролей пользователей.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// AdminRepository определяет методы хранилища для административных операций.
type AdminRepository interface {
	CreateCourse(ctx context.Context, course models.Course) (string, error)
	ReadCourse(ctx context.Context, id string) (*models.Course, error)
	RemoveCourse(ctx context.Context, id string) (int, error)
	CreateLecture(ctx context.Context, lecture models.Lecture) (string, error)
	ReadLecture(ctx context.Context, id string) (*models.Lecture, error)
	RemoveLecture(ctx context.Context, id string) (int, error)
	CountStats(ctx context.Context) (courses, lectures, users int, err error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUserRole(ctx context.Context, userUID string, role models.Role) (int, error)
}

// CacheInvalidator удаляет курс из кеша каталога после мутации.
type CacheInvalidator interface {
	InvalidateCourse(id string)
}

// Stats — агрегированная статистика платформы.
type Stats struct {
	TotalCourses  int `json:"total_courses"`
	TotalLectures int `json:"total_lectures"`
	TotalUsers    int `json:"total_users"`
}

// AdminService реализует административные операции.
type AdminService struct {
	repo    AdminRepository
	catalog CacheInvalidator
	log     *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, catalog CacheInvalidator, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// CreateCourse добавляет новый курс в каталог.
func (s *AdminService) CreateCourse(ctx context.Context, req models.DummyCourse) (string, error) {
	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   req.CreatedBy,
		Duration:    req.Duration,
		Price:       req.Price,
	}
	id, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		return "", err
	}
	s.log.Info("created course", slog.String("course_id", id))
	return id, nil
}

// RemoveCourse удаляет курс вместе с лекциями и инвалидирует кеш.
func (s *AdminService) RemoveCourse(ctx context.Context, id string) error {
	removed, err := s.repo.RemoveCourse(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperrors.ErrCourseNotFound
	}
	s.catalog.InvalidateCourse(id)
	s.log.Info("removed course", slog.String("course_id", id))
	return nil
}

// AddLecture добавляет лекцию к существующему курсу.
func (s *AdminService) AddLecture(ctx context.Context, courseID string, req models.DummyLecture) (string, error) {
	if _, err := s.repo.ReadCourse(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrCourseNotFound
		}
		return "", err
	}

	lecture := models.Lecture{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
	id, err := s.repo.CreateLecture(ctx, lecture)
	if err != nil {
		return "", err
	}
	s.log.Info("added lecture", slog.String("lecture_id", id), slog.String("course_id", courseID))
	return id, nil
}

// RemoveLecture удаляет лекцию по ID.
func (s *AdminService) RemoveLecture(ctx context.Context, id string) error {
	removed, err := s.repo.RemoveLecture(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperrors.ErrLectureNotFound
	}
	s.log.Info("removed lecture", slog.String("lecture_id", id))
	return nil
}

// GetStats возвращает агрегированную статистику платформы.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	courses, lectures, users, err := s.repo.CountStats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalCourses:  courses,
		TotalLectures: lectures,
		TotalUsers:    users,
	}, nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// ToggleRole переключает роль пользователя между admin и learner
// и возвращает новую роль.
func (s *AdminService) ToggleRole(ctx context.Context, userUID string) (models.Role, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	newRole := models.RoleAdmin
	if user.Role == models.RoleAdmin {
		newRole = models.RoleLearner
	}
	if _, err := s.repo.UpdateUserRole(ctx, userUID, newRole); err != nil {
		return "", err
	}
	s.log.Info("updated user role",
		slog.String("user_uid", userUID),
		slog.String("role", newRole.String()))
	return newRole, nil
}
