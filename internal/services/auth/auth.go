// Package auth содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: регистрация, вход и проверка JWT.
package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и дефолтной ролью learner.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleLearner,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Username, user.Role.String())
	if err != nil {
		return "", "", err
	}
	return token, user.Role.String(), nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя из claims.
// Неизвестная роль в токене отклоняется.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UID:      claims.UserUID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
