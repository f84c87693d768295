// Package list реализует HTTP-обработчик списка лекций курса.
//
// Администратор получает лекции без проверки, остальным требуется
// подписка на курс.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListLectures(ctx context.Context, userUID, courseID string) ([]*models.Lecture, error)
}

// Handler обрабатывает запросы на получение лекций курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lecture.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	courseID := chi.URLParam(r, "id")
	if courseID == "" {
		log.Error("missing course id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing course id"))
		return
	}

	lectures, err := h.service.ListLectures(r.Context(), userUID, courseID)
	if err != nil {
		log.Error("failed to list lectures", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("listed lectures", "count", len(lectures))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"lectures": lectures,
	}))
}
