// Package apperrors определяет ошибки доменного уровня. Обработчики
// сопоставляют их с HTTP-статусами через errors.Is, не пропуская
// наружу сырые сообщения хранилища или платёжного провайдера.
package apperrors

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrCourseNotFound = errors.New("course not found")
var ErrLectureNotFound = errors.New("lecture not found")
var ErrProgressNotFound = errors.New("progress record not found")
var ErrNotSubscribed = errors.New("You have not subscribed to this course")
var ErrAlreadyOwned = errors.New("You already have this course")
var ErrPaymentProvider = errors.New("payment provider error")
var ErrPaymentNotConfirmed = errors.New("payment is not confirmed by provider")
var ErrInvalidCredentials = errors.New("invalid credentials")

// IsNotFound сообщает, относится ли ошибка к классу "ресурс не найден".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLectureNotFound) ||
		errors.Is(err, ErrProgressNotFound)
}
