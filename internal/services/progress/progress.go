// Package progress содержит бизнес-логику учёта прохождения курсов:
// идемпотентную фиксацию завершённых лекций и расчёт процента прохождения.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// ProgressRepository определяет методы хранилища для учёта прогресса.
type ProgressRepository interface {
	ReadProgress(ctx context.Context, userUID, courseID string) (*models.Progress, error)
	AddCompletedLecture(ctx context.Context, progressID int, lectureID string) (int, error)
	CountLectures(ctx context.Context, courseID string) (int, error)
}

// ProgressService реализует учёт прохождения курсов.
type ProgressService struct {
	repo ProgressRepository
	log  *slog.Logger
}

// NewProgressService создает новый экземпляр ProgressService.
func NewProgressService(repo ProgressRepository, log *slog.Logger) *ProgressService {
	return &ProgressService{
		repo: repo,
		log:  log,
	}
}

// RecordCompletion фиксирует завершение лекции. Запись прогресса должна
// существовать (её заводит финализация покупки): при её отсутствии
// возвращается ErrProgressNotFound, автосоздания нет. Повторная фиксация
// той же лекции — no-op, added == false.
func (s *ProgressService) RecordCompletion(ctx context.Context, userUID, courseID, lectureID string) (bool, error) {
	record, err := s.repo.ReadProgress(ctx, userUID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, apperrors.ErrProgressNotFound
	}
	if err != nil {
		return false, err
	}

	rowsAffected, err := s.repo.AddCompletedLecture(ctx, record.ID, lectureID)
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	s.log.Info("lecture completion recorded",
		slog.String("course_id", courseID),
		slog.String("lecture_id", lectureID))
	return true, nil
}

// Get возвращает статистику прохождения курса. Курс без лекций даёт 0%,
// деления на ноль не происходит.
func (s *ProgressService) Get(ctx context.Context, userUID, courseID string) (*models.ProgressStats, error) {
	record, err := s.repo.ReadProgress(ctx, userUID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	allLectures, err := s.repo.CountLectures(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed := len(record.CompletedLectures)
	var percentage float64
	if allLectures > 0 {
		percentage = float64(completed*100) / float64(allLectures)
	}

	return &models.ProgressStats{
		Percentage:        percentage,
		CompletedLectures: completed,
		AllLectures:       allLectures,
		Progress:          record,
	}, nil
}
