// Package read реализует HTTP-обработчик получения лекции по ID.
//
// Отсутствующая лекция — 404 до проверки доступа; доступ определяется
// подпиской на курс-владелец лекции, администратор проходит всегда.
package read

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
	GetLecture(ctx context.Context, userUID, lectureID string) (*models.Lecture, error)
}

// Handler обрабатывает запросы на получение лекции по ID.
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
	const op = "handlers.lecture.read"

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

	lectureID := chi.URLParam(r, "id")
	if lectureID == "" {
		log.Error("missing lecture id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing lecture id"))
		return
	}

	lecture, err := h.service.GetLecture(r.Context(), userUID, lectureID)
	if err != nil {
		log.Error("failed to read lecture", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("read lecture", slog.String("lecture_id", lecture.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"lecture": lecture,
	}))
}
