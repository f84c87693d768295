// Package access реализует решение о доступе к содержимому курса:
// администратор проходит всегда, остальные — только при наличии курса
// в множестве подписок. Решение чистое, без побочных эффектов.
package access

import (
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// NormalizeID приводит идентификатор курса к каноничной строковой форме.
// Обе стороны проверки членства нормализуются одинаково: сравнение
// сырого идентификатора со строковым — известный класс дефектов,
// при котором проверка всегда проваливается.
func NormalizeID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.String()
}

// CanAccess сообщает, разрешён ли пользователю доступ к курсу.
// Возвращает true для роли admin либо при членстве courseID
// в множестве подписок пользователя.
func CanAccess(user *models.User, courseID string) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	target := NormalizeID(courseID)
	for _, id := range user.Subscription {
		if NormalizeID(id) == target {
			return true
		}
	}
	return false
}
