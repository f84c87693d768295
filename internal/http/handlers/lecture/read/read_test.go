package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetLecture(ctx context.Context, userUID, lectureID string) (*models.Lecture, error) {
	args := m.Called(ctx, userUID, lectureID)
	if res := args.Get(0); res != nil {
		return res.(*models.Lecture), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		lectureID      string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное чтение лекции",
			lectureID: "lecture-1",
			userUID:   "user-1",
			setupMock: func(m *MockService) {
				m.On("GetLecture", mock.Anything, "user-1", "lecture-1").Return(&models.Lecture{
					ID:       "lecture-1",
					CourseID: "course-1",
					Title:    "Intro",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Intro"`,
		},
		{
			name:      "нет подписки на курс",
			lectureID: "lecture-1",
			userUID:   "user-2",
			setupMock: func(m *MockService) {
				m.On("GetLecture", mock.Anything, "user-2", "lecture-1").Return(nil, apperrors.ErrNotSubscribed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "You have not subscribed to this course",
		},
		{
			name:      "лекция не найдена",
			lectureID: "missing",
			userUID:   "user-1",
			setupMock: func(m *MockService) {
				m.On("GetLecture", mock.Anything, "user-1", "missing").Return(nil, apperrors.ErrLectureNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "нет пользователя в контексте",
			lectureID:      "lecture-1",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/lecture/"+tt.lectureID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.lectureID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
