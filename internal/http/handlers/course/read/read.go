// Package read реализует HTTP-обработчик получения курса по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения курса.
type Service interface {
	GetCourse(ctx context.Context, id string) (*models.Course, error)
}

// Handler обрабатывает запросы на получение курса по ID.
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
	const op = "handlers.course.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing course id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing course id"))
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		log.Error("failed to read course", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("read course", slog.String("course_id", course.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"course": course,
	}))
}
