package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с жизненным циклом резерваций
type Service struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	guideDir        GuideDirectory
	notifier        NotificationSink
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	guideDir GuideDirectory,
	notifier NotificationSink,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		guideDir:        guideDir,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(rsv), nil
}

// GetByConfirmationCode получает резервацию по коду подтверждения
func (s *Service) GetByConfirmationCode(ctx context.Context, code string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByConfirmationCode: fetching reservation code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", ErrInvalidInput)
	}

	rsv, err := s.reservationRepo.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByConfirmationCode: reservation code=%s not found", code)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByConfirmationCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByConfirmationCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(rsv), nil
}

// List получает список резерваций с фильтрацией по клиенту и статусу
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations, customer=%v, status=%v", req.CustomerID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит резервацию в новый статус через таблицу переходов
// Повторная установка текущего статуса идемпотентна и не является ошибкой
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	updated, changed, err := s.transition(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	// Уведомляем клиента только при фактическом переходе в confirmed
	if changed && newStatus == domain.StatusConfirmed {
		s.notifier.SendConfirmation(updated)
	}

	s.logger.Info("UpdateStatus: reservation id=%d now has status=%s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// Confirm подтверждает резервацию и опционально назначает гида
// Уведомление уходит при фактическом переходе в confirmed или при
// назначении гида, повторное подтверждение письмо не дублирует
func (s *Service) Confirm(ctx context.Context, id int64, req *models.ConfirmRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d, guide=%v", id, req.GuideID)

	if req.GuideID != nil {
		if err := s.checkGuideExists(ctx, *req.GuideID); err != nil {
			return nil, err
		}
	}

	var updated *domain.Reservation
	var changed bool
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rsv, err := s.loadForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if !rsv.Status.CanTransitionTo(domain.StatusConfirmed) {
			s.logger.Warn("Confirm: reservation id=%d cannot be confirmed from status=%s", id, rsv.Status)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, rsv.Status, domain.StatusConfirmed)
		}

		if rsv.Status != domain.StatusConfirmed {
			if err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
				return s.wrapRepoError("Confirm", id, err)
			}
			rsv.Status = domain.StatusConfirmed
			changed = true
		}

		if req.GuideID != nil {
			if err := s.reservationRepo.AssignGuide(txCtx, id, *req.GuideID); err != nil {
				return s.wrapRepoError("Confirm", id, err)
			}
			rsv.GuideID = req.GuideID
		}

		updated = rsv
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Повторное подтверждение без гида - идемпотентный no-op, без письма
	if changed || req.GuideID != nil {
		s.notifier.SendConfirmation(updated)
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%d", id)
	return models.FromDomainReservation(updated), nil
}

// AssignGuide назначает гида на резервацию, не меняя её статус
// Отправляет клиенту уведомление с деталями тура
func (s *Service) AssignGuide(ctx context.Context, id int64, req *models.AssignGuideRequest) (*models.ReservationResponse, error) {
	s.logger.Info("AssignGuide: assigning guide=%d to reservation id=%d", req.GuideID, id)

	if req.GuideID <= 0 {
		return nil, fmt.Errorf("%w: guide id must be positive", ErrInvalidInput)
	}
	if err := s.checkGuideExists(ctx, req.GuideID); err != nil {
		return nil, err
	}

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("AssignGuide: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("AssignGuide: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AssignGuide - repository error: %v", ErrInternal, err)
	}

	if err := s.reservationRepo.AssignGuide(ctx, id, req.GuideID); err != nil {
		return nil, s.wrapRepoError("AssignGuide", id, err)
	}
	rsv.GuideID = &req.GuideID

	s.notifier.SendConfirmation(rsv)

	s.logger.Info("AssignGuide: successfully assigned guide=%d to reservation id=%d", req.GuideID, id)
	return models.FromDomainReservation(rsv), nil
}

// Cancel отменяет резервацию через таблицу переходов
// Повторная отмена уже отменённой резервации идемпотентна
func (s *Service) Cancel(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	updated, _, err := s.transition(ctx, id, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%d now has status=%s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// Delete удаляет резервацию
// Если удаление заблокировано привязанным платежом, резервация отменяется,
// а платёж переводится в refunded (мягкое удаление вместо физического)
func (s *Service) Delete(ctx context.Context, id int64) (*models.DeleteReservationResponse, error) {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	err = s.reservationRepo.Delete(ctx, id)
	if err == nil {
		s.logger.Info("Delete: successfully deleted reservation id=%d", id)
		return &models.DeleteReservationResponse{Outcome: models.OutcomeDeleted}, nil
	}

	if !errors.Is(err, reservationRepo.ErrDeleteConstraint) {
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Физическое удаление заблокировано платежом: отменяем и возвращаем деньги
	s.logger.Warn("Delete: reservation id=%d has a linked payment, falling back to soft cancel", id)

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if rsv.Status != domain.StatusCancelled && rsv.Status.CanTransitionTo(domain.StatusCancelled) {
			if err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusCancelled); err != nil {
				return s.wrapRepoError("Delete", id, err)
			}
			rsv.Status = domain.StatusCancelled
		}
		if err := s.paymentRepo.RefundByReservationID(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - failed to refund payment: %v", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.logger.Info("Delete: reservation id=%d soft-cancelled, payment refunded", id)
	return &models.DeleteReservationResponse{
		Outcome:     models.OutcomeSoftCancelled,
		Reason:      "reservation has a linked payment",
		Reservation: models.FromDomainReservation(rsv),
	}, nil
}

// Вспомогательные методы

// transition выполняет переход статуса внутри транзакции
// Возвращает итоговую резервацию и признак фактического изменения
func (s *Service) transition(ctx context.Context, id int64, newStatus domain.ReservationStatus) (*domain.Reservation, bool, error) {
	var (
		updated *domain.Reservation
		changed bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rsv, err := s.loadForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if rsv.Status == newStatus {
			updated = rsv
			return nil
		}

		if !rsv.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("transition: reservation id=%d, illegal transition %s -> %s", id, rsv.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, rsv.Status, newStatus)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			return s.wrapRepoError("transition", id, err)
		}

		rsv.Status = newStatus
		updated = rsv
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return updated, changed, nil
}

func (s *Service) loadForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: failed to load reservation: %v", ErrInternal, err)
	}
	return rsv, nil
}

func (s *Service) checkGuideExists(ctx context.Context, guideID int64) error {
	exists, err := s.guideDir.Exists(ctx, guideID)
	if err != nil {
		s.logger.Error("checkGuideExists: failed to check guide id=%d: %v", guideID, err)
		return fmt.Errorf("%w: failed to check guide: %v", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("checkGuideExists: guide id=%d not found", guideID)
		return ErrGuideNotFound
	}
	return nil
}

func (s *Service) wrapRepoError(op string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
