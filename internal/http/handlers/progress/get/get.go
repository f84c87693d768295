// Package get реализует HTTP-обработчик статистики прохождения курса.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики учёта прогресса.
type Service interface {
	Get(ctx context.Context, userUID, courseID string) (*models.ProgressStats, error)
}

// Handler обрабатывает запросы на получение статистики прохождения.
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
	const op = "handlers.progress.get"

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
	if courseID == "" {
		log.Error("missing course query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("course is required"))
		return
	}

	stats, err := h.service.Get(r.Context(), userUID, courseID)
	if err != nil {
		log.Error("failed to get progress", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("read progress", slog.String("course_id", courseID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"course_progress_percentage": stats.Percentage,
		"completed_lectures":         stats.CompletedLectures,
		"all_lectures":               stats.AllLectures,
		"progress":                   stats.Progress,
	}))
}
