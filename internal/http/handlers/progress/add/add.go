// Package add реализует HTTP-обработчик фиксации завершённой лекции.
//
// Курс и лекция передаются query-параметрами course и lectureId,
// пользователь берётся из токена. Повторная фиксация — no-op.
package add

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики учёта прогресса.
type Service interface {
	RecordCompletion(ctx context.Context, userUID, courseID, lectureID string) (bool, error)
}

// Handler обрабатывает запросы на фиксацию завершения лекции.
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
	const op = "handlers.progress.add"

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

	courseID := r.URL.Query().Get("course")
	lectureID := r.URL.Query().Get("lectureId")
	if courseID == "" || lectureID == "" {
		log.Error("missing course or lectureId query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("course and lectureId are required"))
		return
	}

	added, err := h.service.RecordCompletion(r.Context(), userUID, courseID, lectureID)
	if err != nil {
		log.Error("failed to record completion", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if !added {
		log.Info("lecture already completed", slog.String("lecture_id", lectureID))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "Progress recorded",
		}))
		return
	}

	log.Info("new progress added", slog.String("lecture_id", lectureID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "New progress added",
	}))
}
