package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	paymentRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TT-ReservationService/internal/service/payments/models"
)

// Service сервис для проведения платежей по резервациям
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
	roll            RandFunc // nil - math/rand
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		timeProvider:    RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Process проводит платёж по резервации выбранным способом
// Платёж создается в статусе pending, затем симулируется его исход
// и запись переводится в success или failed
func (s *Service) Process(ctx context.Context, reservationID int64, req *models.ProcessPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Process: processing payment for reservation=%d, method=%s, amount=%.2f",
		reservationID, req.Method, req.Amount)

	if req.Amount <= 0 {
		s.logger.Warn("Process: non-positive amount=%.2f for reservation=%d", req.Amount, reservationID)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		s.logger.Warn("Process: unsupported method=%s for reservation=%d", req.Method, reservationID)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}

	// Резервация должна существовать
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Process: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Process: failed to load reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Process - failed to load reservation: %v", ErrInternal, err)
	}

	// У резервации может быть не более одного платежа
	if _, err := s.paymentRepo.GetByReservationID(ctx, reservationID); err == nil {
		s.logger.Warn("Process: reservation id=%d already has a payment", reservationID)
		return nil, ErrPaymentAlreadyExists
	} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("Process: failed to check existing payment for reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Process - failed to check existing payment: %v", ErrInternal, err)
	}

	created, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ReservationID: reservationID,
		Amount:        req.Amount,
		Status:        domain.PaymentPending,
		Method:        method,
		PaymentDate:   s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("Process: failed to create payment for reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Process - failed to create payment: %v", ErrInternal, err)
	}

	strategy, err := NewStrategy(method, s.roll)
	if err != nil {
		return nil, err
	}

	pctx := NewPaymentContext()
	pctx.SetStrategy(strategy)

	ok, err := pctx.Execute(req.Amount)
	if err != nil {
		return nil, err
	}

	finalStatus := domain.PaymentFailed
	if ok {
		finalStatus = domain.PaymentSuccess
	}

	if err := s.paymentRepo.UpdateStatus(ctx, created.ID, finalStatus); err != nil {
		s.logger.Error("Process: failed to finalize payment id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Process - failed to finalize payment: %v", ErrInternal, err)
	}
	created.Status = finalStatus

	s.metrics.IncPaymentProcessed(string(finalStatus))
	s.logger.Info("Process: payment id=%d for reservation=%d via %s finished with status=%s",
		created.ID, reservationID, pctx.StrategyName(), finalStatus)

	return models.FromDomainPayment(created), nil
}

// GetByReservationID получает платёж резервации
func (s *Service) GetByReservationID(ctx context.Context, reservationID int64) (*models.PaymentResponse, error) {
	s.logger.Info("GetByReservationID: fetching payment for reservation=%d", reservationID)

	p, err := s.paymentRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByReservationID: payment for reservation=%d not found", reservationID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByReservationID: repository error for reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetByReservationID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(p), nil
}

// ExpireStalePending переводит зависшие pending платежи в failed
// Просроченным считается платёж старше maxAge
func (s *Service) ExpireStalePending(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.timeProvider.Now().Add(-maxAge)
	s.logger.Info("ExpireStalePending: expiring pending payments older than %s", cutoff.Format(time.RFC3339))

	stale, err := s.paymentRepo.FindExpiredPending(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireStalePending: failed to find expired payments: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePending - failed to find expired payments: %v", ErrInternal, err)
	}

	expired := 0
	for _, p := range stale {
		if err := s.paymentRepo.UpdateStatus(ctx, p.ID, domain.PaymentFailed); err != nil {
			// Остальные платежи подберёт следующий запуск
			s.logger.Error("ExpireStalePending: failed to expire payment id=%d: %v", p.ID, err)
			continue
		}
		s.logger.Info("ExpireStalePending: payment id=%d for reservation=%d marked as failed", p.ID, p.ReservationID)
		expired++
	}

	if expired > 0 {
		s.metrics.AddExpiredPayments(expired)
	}
	s.logger.Info("ExpireStalePending: expired %d of %d stale payments", expired, len(stale))
	return expired, nil
}
