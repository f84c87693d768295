// Package create реализует HTTP-обработчик оформления покупки курса.
package create

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
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
)

// Service описывает интерфейс бизнес-логики оформления покупки.
type Service interface {
	Create(ctx context.Context, userUID, courseID string) (*paymentprovider.CheckoutSession, error)
}

// Handler обрабатывает запросы на создание checkout-сессии.
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

// ServeHTTP godoc
// @Summary Оформить покупку курса
// @Description Создает checkout-сессию у платёжного провайдера для курса
// @Tags Checkout
// @Produce  json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response "ID и URL сессии"
// @Failure 400 {object} response.ErrorResponse "Курс уже куплен"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /checkout/{id} [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.create"

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

	session, err := h.service.Create(r.Context(), userUID, courseID)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("created checkout session", slog.String("session_id", session.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":  session.ID,
		"url": session.URL,
	}))
}
