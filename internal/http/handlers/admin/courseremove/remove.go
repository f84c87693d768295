// Package courseremove реализует admin-обработчик удаления курса.
package courseremove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления курса.
type Service interface {
	RemoveCourse(ctx context.Context, id string) error
}

// Handler обрабатывает запросы на удаление курса.
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
	const op = "handlers.admin.courseremove"

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

	if err := h.service.RemoveCourse(r.Context(), id); err != nil {
		log.Error("failed to remove course", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("removed course", slog.String("course_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"course_id": id,
	}))
}
