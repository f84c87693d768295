// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Message — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Message string `json:"message" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// StatusForError сопоставляет доменную ошибку с HTTP-статусом:
// отсутствующие ресурсы — 404, нарушения политики доступа — 400,
// сбои платёжного провайдера и всё прочее — 500.
func StatusForError(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotSubscribed),
		errors.Is(err, apperrors.ErrAlreadyOwned),
		errors.Is(err, apperrors.ErrPaymentNotConfirmed),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RenderError пишет в ответ HTTP-статус и JSON с текстом доменной ошибки.
// Сообщения хранилища и провайдера наружу не пропускаются: для неизвестных
// ошибок возвращается обобщённый текст.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	msg := "internal error"
	for _, known := range []error{
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrLectureNotFound,
		apperrors.ErrProgressNotFound,
		apperrors.ErrNotSubscribed,
		apperrors.ErrAlreadyOwned,
		apperrors.ErrPaymentProvider,
		apperrors.ErrPaymentNotConfirmed,
		apperrors.ErrInvalidCredentials,
	} {
		if errors.Is(err, known) {
			msg = known.Error()
			break
		}
	}
	w.WriteHeader(status)
	render.JSON(w, r, Error(msg))
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "gt", "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is out of range", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status:  StatusError,
		Message: strings.Join(errsMsgs, ", "),
	}
}
