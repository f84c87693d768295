// Package stats реализует admin-обработчик статистики платформы.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики статистики.
type Service interface {
	GetStats(ctx context.Context) (*admin.Stats, error)
}

// Handler обрабатывает запросы на получение статистики.
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
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.GetStats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to collect stats"))
		return
	}

	log.Info("collected stats",
		slog.Int("total_courses", res.TotalCourses),
		slog.Int("total_users", res.TotalUsers))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": res,
	}))
}
