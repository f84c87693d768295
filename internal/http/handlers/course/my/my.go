// Package my реализует HTTP-обработчик списка купленных курсов пользователя.
package my

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

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	MyCourses(ctx context.Context, userUID string) ([]*models.Course, error)
}

// Handler обрабатывает запросы на получение курсов из подписок пользователя.
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
	const op = "handlers.course.my"

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

	courses, err := h.service.MyCourses(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list my courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list courses"))
		return
	}

	log.Info("listed my courses", "count", len(courses))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"courses": courses,
	}))
}
