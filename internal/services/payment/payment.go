// Package payment содержит бизнес-логику финализации покупки. Покупка
// фиксируется только после авторитетной сверки с платёжным провайдером:
// клиентским идентификаторам без подтверждения не доверяем.
package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/course-platform/internal/apperrors"
	"github.com/magabrotheeeer/course-platform/internal/models"
	"github.com/magabrotheeeer/course-platform/internal/paymentprovider"
	"github.com/magabrotheeeer/course-platform/internal/services/access"
)

// PaymentRepository определяет методы хранилища для фиксации покупки.
type PaymentRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ReadCourse(ctx context.Context, id string) (*models.Course, error)
	SavePayment(ctx context.Context, payment models.Payment) (int, bool, error)
	AddSubscription(ctx context.Context, userUID, courseID string) (int, error)
	CreateProgress(ctx context.Context, userUID, courseID string) (int, error)
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
}

// ProviderClient определяет авторитетное чтение сессии у провайдера.
type ProviderClient interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
}

// EventPublisher публикует событие завершённой покупки.
type EventPublisher interface {
	PublishPurchaseCompleted(event PurchaseEvent) error
}

// PurchaseEvent — событие завершённой покупки для внешних потребителей.
type PurchaseEvent struct {
	SessionID string `json:"session_id"`
	UserUID   string `json:"user_uid"`
	CourseID  string `json:"course_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// PaymentService верифицирует платежи и расширяет множество подписок.
type PaymentService struct {
	repo      PaymentRepository
	provider  ProviderClient
	publisher EventPublisher
	currency  string
	log       *slog.Logger
}

// New создает новый экземпляр PaymentService. Поле currency — валюта,
// в которой выставляются цены курсов; сессии в другой валюте отклоняются.
// Publisher может быть nil, тогда события не публикуются.
func New(repo PaymentRepository, provider ProviderClient, publisher EventPublisher, currency string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		currency:  currency,
		log:       log,
	}
}

// Verify финализирует покупку. Сессия запрашивается у провайдера по её
// идентификатору; покупка фиксируется только если сессия оплачена, а её
// метаданные и сумма совпадают с заявленными пользователем и курсом.
// Повторный вызов для той же сессии идемпотентен: ни дубликата платежа,
// ни дубликата в множестве подписок не возникает.
func (s *PaymentService) Verify(ctx context.Context, sessionID, userUID, courseID string) error {
	user, err := s.repo.GetUser(ctx, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	course, err := s.repo.ReadCourse(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.log.Error("provider failed to retrieve checkout session", slog.Any("err", err))
		return fmt.Errorf("%w: %w", apperrors.ErrPaymentProvider, err)
	}

	if session.PaymentStatus != "paid" {
		s.log.Error("checkout session is not paid",
			slog.String("session_id", sessionID),
			slog.String("payment_status", session.PaymentStatus))
		return apperrors.ErrPaymentNotConfirmed
	}
	if access.NormalizeID(session.Metadata["user_uid"]) != access.NormalizeID(user.UID) ||
		access.NormalizeID(session.Metadata["course_id"]) != access.NormalizeID(course.ID) {
		s.log.Error("checkout session metadata mismatch", slog.String("session_id", sessionID))
		return apperrors.ErrPaymentNotConfirmed
	}
	if session.AmountTotal != course.Price*100 {
		s.log.Error("checkout session amount mismatch",
			slog.String("session_id", sessionID),
			slog.Int64("amount_total", session.AmountTotal),
			slog.Int64("expected", course.Price*100))
		return apperrors.ErrPaymentNotConfirmed
	}
	if !strings.EqualFold(session.Currency, s.currency) {
		s.log.Error("checkout session currency mismatch",
			slog.String("session_id", sessionID),
			slog.String("currency", session.Currency),
			slog.String("expected", s.currency))
		return apperrors.ErrPaymentNotConfirmed
	}

	customerID := session.Customer
	if customerID == "" {
		customerID = "NA"
	}
	_, created, err := s.repo.SavePayment(ctx, models.Payment{
		ProviderSessionID:  session.ID,
		ProviderCustomerID: customerID,
		UserUID:            user.UID,
		CourseID:           course.ID,
		Amount:             session.AmountTotal,
		Currency:           session.Currency,
	})
	if err != nil {
		return err
	}

	if _, err := s.repo.AddSubscription(ctx, user.UID, course.ID); err != nil {
		return err
	}
	if _, err := s.repo.CreateProgress(ctx, user.UID, course.ID); err != nil {
		return err
	}

	if !created {
		s.log.Info("payment already recorded, verify is a no-op",
			slog.String("session_id", session.ID))
		return nil
	}

	if s.publisher != nil {
		event := PurchaseEvent{
			SessionID: session.ID,
			UserUID:   user.UID,
			CourseID:  course.ID,
			Amount:    session.AmountTotal,
			Currency:  session.Currency,
		}
		if err := s.publisher.PublishPurchaseCompleted(event); err != nil {
			s.log.Warn("failed to publish purchase event", slog.Any("err", err))
		}
	}

	s.log.Info("payment verified and course purchased",
		slog.String("session_id", session.ID),
		slog.String("course_id", course.ID))
	return nil
}

// List возвращает платежи пользователя.
func (s *PaymentService) List(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}
