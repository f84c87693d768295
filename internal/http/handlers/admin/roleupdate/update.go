// Package roleupdate реализует admin-обработчик переключения роли пользователя.
package roleupdate

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

// Service описывает интерфейс бизнес-логики смены роли.
type Service interface {
	ToggleRole(ctx context.Context, userUID string) (models.Role, error)
}

// Handler обрабатывает запросы на переключение роли пользователя.
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
	const op = "handlers.admin.roleupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "id")
	if userUID == "" {
		log.Error("missing user id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing user id"))
		return
	}

	role, err := h.service.ToggleRole(r.Context(), userUID)
	if err != nil {
		log.Error("failed to update role", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("updated role",
		slog.String("user_uid", userUID),
		slog.String("role", role.String()))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": userUID,
		"role":     role,
	}))
}
