// Package models содержит доменные структуры платформы: пользователей,
// курсы, лекции, платежи и прогресс прохождения. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import (
	"fmt"
	"time"
)

// Role задаёт роль пользователя. Допустимы ровно два значения:
// RoleAdmin и RoleLearner, произвольные строки отклоняются при парсинге.
type Role string

const (
	// RoleAdmin — администратор, имеет доступ ко всем курсам и admin-операциям.
	RoleAdmin Role = "admin"
	// RoleLearner — обычный пользователь, доступ к курсам только по подписке.
	RoleLearner Role = "learner"
)

// ParseRole преобразует строку в Role, возвращает ошибку для неизвестных значений.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleLearner:
		return RoleLearner, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// String возвращает строковое представление роли.
func (r Role) String() string { return string(r) }

// User представляет зарегистрированного пользователя платформы.
// Subscription — множество идентификаторов курсов, к которым у пользователя
// есть доступ. Хранится отдельной таблицей user_subscriptions.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Subscription []string  `json:"subscription"`
	CreatedAt    time.Time `json:"created_at"`
}
