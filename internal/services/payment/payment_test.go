package payment

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ReadCourse(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockRepository) SavePayment(ctx context.Context, payment models.Payment) (int, bool, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) AddSubscription(ctx context.Context, userUID, courseID string) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CreateProgress(ctx context.Context, userUID, courseID string) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPurchaseCompleted(event PurchaseEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func paidSession() *paymentprovider.CheckoutSession {
	return &paymentprovider.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: "paid",
		AmountTotal:   50000,
		Currency:      "inr",
		Customer:      "cus_123",
		Metadata: map[string]string{
			"user_uid":  "user-1",
			"course_id": "course-1",
		},
	}
}

func TestPaymentService_Verify(t *testing.T) {
	user := &models.User{UID: "user-1", Username: "student", Role: models.RoleLearner}
	course := &models.Course{ID: "course-1", Title: "Go Basics", Price: 500}

	tests := []struct {
		name          string
		setupMocks    func(*MockRepository, *MockProvider, *MockPublisher)
		expectedError error
	}{
		{
			name: "paid session records purchase and publishes event",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(paidSession(), nil).Once()
				r.On("SavePayment", mock.Anything, mock.MatchedBy(func(pay models.Payment) bool {
					return pay.ProviderSessionID == "cs_test_123" &&
						pay.Amount == 50000 &&
						pay.UserUID == "user-1" &&
						pay.CourseID == "course-1"
				})).Return(1, true, nil).Once()
				r.On("AddSubscription", mock.Anything, "user-1", "course-1").Return(1, nil).Once()
				r.On("CreateProgress", mock.Anything, "user-1", "course-1").Return(1, nil).Once()
				pub.On("PublishPurchaseCompleted", mock.MatchedBy(func(e PurchaseEvent) bool {
					return e.SessionID == "cs_test_123" && e.CourseID == "course-1"
				})).Return(nil).Once()
			},
		},
		{
			name: "repeated verify of the same session is idempotent",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(paidSession(), nil).Once()
				r.On("SavePayment", mock.Anything, mock.Anything).Return(0, false, nil).Once()
				r.On("AddSubscription", mock.Anything, "user-1", "course-1").Return(0, nil).Once()
				r.On("CreateProgress", mock.Anything, "user-1", "course-1").Return(0, nil).Once()
			},
		},
		{
			name: "unpaid session rejected",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				session := paidSession()
				session.PaymentStatus = "unpaid"
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(session, nil).Once()
			},
			expectedError: apperrors.ErrPaymentNotConfirmed,
		},
		{
			name: "metadata for another user rejected",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				session := paidSession()
				session.Metadata["user_uid"] = "user-2"
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(session, nil).Once()
			},
			expectedError: apperrors.ErrPaymentNotConfirmed,
		},
		{
			name: "amount mismatch rejected",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				session := paidSession()
				session.AmountTotal = 100
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(session, nil).Once()
			},
			expectedError: apperrors.ErrPaymentNotConfirmed,
		},
		{
			name: "session paid in another currency rejected",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				session := paidSession()
				session.Currency = "usd"
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(session, nil).Once()
			},
			expectedError: apperrors.ErrPaymentNotConfirmed,
		},
		{
			name: "provider unavailable",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(course, nil).Once()
				p.On("GetCheckoutSession", mock.Anything, "cs_test_123").Return(nil, errors.New("connection refused")).Once()
			},
			expectedError: apperrors.ErrPaymentProvider,
		},
		{
			name: "unknown user",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				r.On("GetUser", mock.Anything, "user-1").Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name: "unknown course",
			setupMocks: func(r *MockRepository, p *MockProvider, pub *MockPublisher) {
				r.On("GetUser", mock.Anything, "user-1").Return(user, nil).Once()
				r.On("ReadCourse", mock.Anything, "course-1").Return(nil, sql.ErrNoRows).Once()
			},
			expectedError: apperrors.ErrCourseNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			provider := new(MockProvider)
			publisher := new(MockPublisher)
			service := New(repo, provider, publisher, "inr", newNoopLogger())

			tt.setupMocks(repo, provider, publisher)

			err := service.Verify(context.Background(), "cs_test_123", "user-1", "course-1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			provider.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestPaymentService_List(t *testing.T) {
	expected := []*models.Payment{
		{ID: 1, ProviderSessionID: "cs_1", UserUID: "user-1", Amount: 50000},
		{ID: 2, ProviderSessionID: "cs_2", UserUID: "user-1", Amount: 99900},
	}

	repo := new(MockRepository)
	repo.On("ListPayments", mock.Anything, "user-1").Return(expected, nil).Once()

	service := New(repo, new(MockProvider), nil, "inr", newNoopLogger())

	result, err := service.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	repo.AssertExpectations(t)
}
