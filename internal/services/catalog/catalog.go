// Package catalog содержит бизнес-логику каталога: чтение курсов и лекций
// с кешированием и проверкой подписки при доступе к лекциям.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/services/access"
)

// CatalogRepository определяет методы хранилища, используемые каталогом.
type CatalogRepository interface {
	// ListCourses возвращает все курсы.
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id string) (*models.Course, error)
	// ListCoursesByUser возвращает курсы из подписок пользователя.
	ListCoursesByUser(ctx context.Context, userUID string) ([]*models.Course, error)
	// ListLectures возвращает лекции курса.
	ListLectures(ctx context.Context, courseID string) ([]*models.Lecture, error)
	// ReadLecture возвращает лекцию по ID.
	ReadLecture(ctx context.Context, id string) (*models.Lecture, error)
	// GetUser возвращает пользователя с множеством подписок.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует чтение каталога с кешированием
// и решением о доступе к лекциям.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListCourses возвращает все курсы каталога.
func (s *CatalogService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repo.ListCourses(ctx)
}

// GetCourse возвращает курс по ID, используя кеш или репозиторий.
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var result *models.Course
	cacheKey := fmt.Sprintf("course:%s", access.NormalizeID(id))
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read course from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadCourse(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// MyCourses возвращает курсы из множества подписок пользователя.
func (s *CatalogService) MyCourses(ctx context.Context, userUID string) ([]*models.Course, error) {
	return s.repo.ListCoursesByUser(ctx, userUID)
}

// ListLectures возвращает лекции курса. Администратор проходит без
// проверки, остальным требуется подписка на курс.
func (s *CatalogService) ListLectures(ctx context.Context, userUID, courseID string) ([]*models.Lecture, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !access.CanAccess(user, courseID) {
		return nil, apperrors.ErrNotSubscribed
	}
	return s.repo.ListLectures(ctx, courseID)
}

// GetLecture возвращает лекцию по ID. Отсутствующая лекция — ошибка
// ErrLectureNotFound, она проверяется до решения о доступе. Доступ
// определяется подпиской на курс-владелец лекции.
func (s *CatalogService) GetLecture(ctx context.Context, userUID, lectureID string) (*models.Lecture, error) {
	lecture, err := s.repo.ReadLecture(ctx, lectureID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrLectureNotFound
	}
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !access.CanAccess(user, lecture.CourseID) {
		return nil, apperrors.ErrNotSubscribed
	}
	return lecture, nil
}

// InvalidateCourse удаляет курс из кеша после admin-мутации.
func (s *CatalogService) InvalidateCourse(id string) {
	cacheKey := fmt.Sprintf("course:%s", access.NormalizeID(id))
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
