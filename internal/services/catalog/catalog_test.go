package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockRepository) ReadCourse(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRepository) ListCoursesByUser(ctx context.Context, userUID string) ([]*models.Course, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockRepository) ListLectures(ctx context.Context, courseID string) ([]*models.Lecture, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lecture), args.Error(1)
}

func (m *MockRepository) ReadLecture(ctx context.Context, id string) (*models.Lecture, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lecture), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// fakeCache хранит значения в памяти, повторяя JSON-семантику кеша.
type fakeCache struct {
	values map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.values, key)
	return nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCatalogService_GetCourse(t *testing.T) {
	course := &models.Course{ID: "course-1", Title: "Go Basics", Price: 500}

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		repo := new(MockRepository)
		cache := newFakeCache()
		service := NewCatalogService(repo, cache, newNoopLogger())

		repo.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()

		result, err := service.GetCourse(context.Background(), "course-1")
		assert.NoError(t, err)
		assert.Equal(t, course, result)

		// Повторное чтение обслуживается кешем, репозиторий не трогается.
		result, err = service.GetCourse(context.Background(), "course-1")
		assert.NoError(t, err)
		assert.Equal(t, course.ID, result.ID)

		repo.AssertExpectations(t)
	})

	t.Run("invalidate drops the cached course", func(t *testing.T) {
		repo := new(MockRepository)
		cache := newFakeCache()
		service := NewCatalogService(repo, cache, newNoopLogger())

		repo.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Twice()

		_, err := service.GetCourse(context.Background(), "course-1")
		assert.NoError(t, err)

		service.InvalidateCourse("course-1")

		_, err = service.GetCourse(context.Background(), "course-1")
		assert.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("unknown course", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewCatalogService(repo, newFakeCache(), newNoopLogger())

		repo.On("ReadCourse", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

		result, err := service.GetCourse(context.Background(), "missing")
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})
}

func TestCatalogService_ListLectures(t *testing.T) {
	lectures := []*models.Lecture{
		{ID: "lecture-1", CourseID: "course-1", Title: "Intro", Position: 1},
		{ID: "lecture-2", CourseID: "course-1", Title: "Setup", Position: 2},
	}

	tests := []struct {
		name          string
		user          *models.User
		userErr       error
		expectLecture bool
		expectedError error
	}{
		{
			name:          "subscribed learner sees lectures",
			user:          &models.User{UID: "user-1", Role: models.RoleLearner, Subscription: []string{"course-1"}},
			expectLecture: true,
		},
		{
			name:          "admin bypasses subscription check",
			user:          &models.User{UID: "admin-1", Role: models.RoleAdmin},
			expectLecture: true,
		},
		{
			name:          "unsubscribed learner rejected",
			user:          &models.User{UID: "user-2", Role: models.RoleLearner, Subscription: []string{"course-2"}},
			expectedError: apperrors.ErrNotSubscribed,
		},
		{
			name:          "unknown user",
			userErr:       sql.ErrNoRows,
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewCatalogService(repo, newFakeCache(), newNoopLogger())

			if tt.userErr != nil {
				repo.On("GetUser", mock.Anything, mock.Anything).Return(nil, tt.userErr).Once()
			} else {
				repo.On("GetUser", mock.Anything, mock.Anything).Return(tt.user, nil).Once()
			}
			if tt.expectLecture {
				repo.On("ListLectures", mock.Anything, "course-1").Return(lectures, nil).Once()
			}

			result, err := service.ListLectures(context.Background(), "uid", "course-1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, lectures, result)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_GetLecture(t *testing.T) {
	lecture := &models.Lecture{ID: "lecture-1", CourseID: "course-1", Title: "Intro"}

	t.Run("missing lecture reported before access check", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewCatalogService(repo, newFakeCache(), newNoopLogger())

		repo.On("ReadLecture", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

		result, err := service.GetLecture(context.Background(), "user-1", "missing")
		assert.ErrorIs(t, err, apperrors.ErrLectureNotFound)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})

	t.Run("access decided by owning course", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewCatalogService(repo, newFakeCache(), newNoopLogger())

		repo.On("ReadLecture", mock.Anything, "lecture-1").Return(lecture, nil).Once()
		repo.On("GetUser", mock.Anything, "user-1").Return(&models.User{
			UID:          "user-1",
			Role:         models.RoleLearner,
			Subscription: []string{"course-2"},
		}, nil).Once()

		result, err := service.GetLecture(context.Background(), "user-1", "lecture-1")
		assert.ErrorIs(t, err, apperrors.ErrNotSubscribed)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})

	t.Run("subscribed learner reads lecture", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewCatalogService(repo, newFakeCache(), newNoopLogger())

		repo.On("ReadLecture", mock.Anything, "lecture-1").Return(lecture, nil).Once()
		repo.On("GetUser", mock.Anything, "user-1").Return(&models.User{
			UID:          "user-1",
			Role:         models.RoleLearner,
			Subscription: []string{"course-1"},
		}, nil).Once()

		result, err := service.GetLecture(context.Background(), "user-1", "lecture-1")
		assert.NoError(t, err)
		assert.Equal(t, lecture, result)

		repo.AssertExpectations(t)
	})
}
