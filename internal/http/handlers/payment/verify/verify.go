// Package verify реализует HTTP-обработчик финализации покупки.
//
// Тело запроса содержит идентификаторы платежа, пользователя и курса,
// но им не доверяем: user_id сверяется с токеном, а факт оплаты
// подтверждается авторитетным чтением сессии у провайдера.
package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/http/response"
	"github.com/magabrotheeeer/course-platform/internal/lib/sl"
	"github.com/magabrotheeeer/course-platform/internal/services/access"
)

// Request представляет запрос на финализацию покупки.
type Request struct {
	PaymentID string `json:"payment_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// Service описывает интерфейс бизнес-логики верификации платежа.
type Service interface {
	Verify(ctx context.Context, sessionID, userUID, courseID string) error
}

// Handler обрабатывает запросы на верификацию платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату курса
// @Description Сверяет платёж с провайдером и открывает доступ к курсу
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификаторы платежа, пользователя и курса"
// @Success 200 {object} response.Response "Покупка зафиксирована"
// @Failure 400 {object} response.ErrorResponse "Платёж не подтверждён"
// @Failure 404 {object} response.ErrorResponse "Пользователь или курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /verify [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	if access.NormalizeID(req.UserID) != access.NormalizeID(userUID) {
		log.Error("user id in body does not match token",
			slog.String("body_user_id", req.UserID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user id does not match the caller"))
		return
	}

	if err := h.service.Verify(r.Context(), req.PaymentID, userUID, req.CourseID); err != nil {
		log.Error("failed to verify payment", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("payment verified", slog.String("payment_id", req.PaymentID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Payment verified and course purchased",
	}))
}
