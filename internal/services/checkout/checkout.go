// Package checkout содержит бизнес-логику оформления покупки курса:
// проверку предусловий и создание checkout-сессии у платёжного провайдера.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/config"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/course-platform/internal/services/access"
)

// CheckoutRepository определяет методы хранилища, используемые при оформлении.
type CheckoutRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ReadCourse(ctx context.Context, id string) (*models.Course, error)
	IsSubscribed(ctx context.Context, userUID, courseID string) (bool, error)
}

// ProviderClient определяет интерфейс создания сессии у платёжного провайдера.
type ProviderClient interface {
	CreateCheckoutSession(ctx context.Context, reqParams paymentprovider.CreateSessionRequest) (*paymentprovider.CheckoutSession, error)
}

// CheckoutService создаёт платёжные сессии для покупки курсов.
type CheckoutService struct {
	repo     CheckoutRepository
	provider ProviderClient
	cfg      config.Stripe
	log      *slog.Logger
}

// NewCheckoutService создает новый экземпляр CheckoutService.
func NewCheckoutService(repo CheckoutRepository, provider ProviderClient, cfg config.Stripe, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// Create оформляет покупку курса: пользователь и курс должны существовать,
// уже купленный курс отклоняется. Возвращает созданную сессию провайдера,
// по которой клиент переходит на hosted-страницу оплаты.
func (s *CheckoutService) Create(ctx context.Context, userUID, courseID string) (*paymentprovider.CheckoutSession, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.repo.ReadCourse(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	owned, err := s.repo.IsSubscribed(ctx, user.UID, course.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, apperrors.ErrAlreadyOwned
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CreateSessionRequest{
		Currency:           s.cfg.Currency,
		ProductName:        course.Title,
		ProductDescription: course.Description,
		UnitAmount:         course.Price * 100,
		Quantity:           1,
		SuccessURL:         fmt.Sprintf("%s/%s", s.cfg.SuccessURL, course.ID),
		CancelURL:          fmt.Sprintf("%s/%s", s.cfg.CancelURL, course.ID),
		Metadata: map[string]string{
			"user_uid":  access.NormalizeID(user.UID),
			"course_id": access.NormalizeID(course.ID),
		},
	})
	if err != nil {
		s.log.Error("provider failed to create checkout session", slog.Any("err", err))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPaymentProvider, err)
	}

	s.log.Info("created checkout session",
		slog.String("session_id", session.ID),
		slog.String("course_id", course.ID))
	return session, nil
}
