package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/course-platform/internal/lib/password"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		// Пароль хэшируется, роль по умолчанию learner.
		return user.Email == "student@example.com" &&
			user.Username == "student" &&
			user.Role == models.RoleLearner &&
			user.PasswordHash != "secretpassword" &&
			password.CompareHash(user.PasswordHash, "secretpassword") == nil
	})).Return("uid-1", nil).Once()

	uid, err := service.Register(context.Background(), "student@example.com", "student", "secretpassword")
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("secretpassword")
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Username:     "student",
		PasswordHash: hashed,
		Role:         models.RoleLearner,
	}

	tests := []struct {
		name          string
		username      string
		rawPassword   string
		setupMocks    func(*MockUserRepository)
		expectedRole  string
		expectedError error
	}{
		{
			name:        "valid credentials",
			username:    "student",
			rawPassword: "secretpassword",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "student").Return(user, nil).Once()
			},
			expectedRole: "learner",
		},
		{
			name:        "wrong password",
			username:    "student",
			rawPassword: "wrongpassword",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "student").Return(user, nil).Once()
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:        "unknown user",
			username:    "ghost",
			rawPassword: "secretpassword",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			service := NewAuthService(repo, newTestMaker())

			tt.setupMocks(repo)

			token, role, err := service.Login(context.Background(), tt.username, tt.rawPassword)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.expectedRole, role)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	maker := newTestMaker()
	service := NewAuthService(new(MockUserRepository), maker)

	t.Run("valid token", func(t *testing.T) {
		token, err := maker.GenerateToken("uid-1", "student", "learner")
		require.NoError(t, err)

		user, err := service.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
		assert.Equal(t, "uid-1", user.UID)
		assert.Equal(t, "student", user.Username)
		assert.Equal(t, models.RoleLearner, user.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		token, err := maker.GenerateToken("uid-1", "student", "superuser")
		require.NoError(t, err)

		user, err := service.ValidateToken(context.Background(), token)
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		user, err := service.ValidateToken(context.Background(), "not-a-token")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}
