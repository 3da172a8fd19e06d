package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/reservation"
	packageRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/tourpackage"
)

// confirmationCodeAttempts сколько кодов подтверждения пробуем при
// коллизии уникального индекса, прежде чем вернуть ошибку вызывающему
const confirmationCodeAttempts = 3

// UseCase use case создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	customerDir     CustomerDirectory
	packageCatalog  PackageCatalog
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
	randInt         func(n int) int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	customerDir CustomerDirectory,
	packageCatalog PackageCatalog,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		customerDir:     customerDir,
		packageCatalog:  packageCatalog,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
		// глобальный rand.Intn потокобезопасен, Execute вызывается конкурентно
		randInt:         rand.Intn,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции -
// две конкурентные заявки на пересекающиеся даты не могут закоммититься
// обе, конфликт сериализации всплывает как ErrBookingConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: package=%d, email=%s, start=%s, end=%s",
		req.PackageID, req.Customer.Email,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пакет
	if _, err := uc.packageCatalog.GetByID(ctx, req.PackageID); err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Находим или создаем клиента по email
	cust, err := uc.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	// 4. Проверка доступности и вставка в сериализуемой транзакции.
	// Коллизия кода подтверждения прерывает транзакцию, поэтому повтор
	// с новым кодом перезапускает её целиком.
	var result *domain.Reservation

	for attempt := 1; attempt <= confirmationCodeAttempts; attempt++ {
		code := generateConfirmationCode(uc.timeProvider.Now(), uc.randInt)

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			overlap, err := uc.reservationRepo.ExistsActiveOverlap(txCtx, req.PackageID, req.StartDate, req.EndDate)
			if err != nil {
				uc.logger.Error("CreateBooking: overlap check failed: %v", err)
				return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
			}
			if overlap {
				return ErrBookingConflict
			}

			created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
				ConfirmationCode: code,
				CustomerID:       cust.ID,
				PackageID:        req.PackageID,
				Status:           domain.StatusPending,
				StartDate:        req.StartDate,
				EndDate:          req.EndDate,
			})
			if err != nil {
				return err
			}

			result = created
			return nil
		})

		if errors.Is(err, reservationRepo.ErrDuplicateConfirmationCode) {
			uc.logger.Warn("CreateBooking: confirmation code collision (attempt %d/%d): %s",
				attempt, confirmationCodeAttempts, code)
			continue
		}
		break
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingConflict):
			uc.logger.Warn("CreateBooking: package id=%d not available for %s..%s",
				req.PackageID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
			uc.metrics.IncBookingConflict()
			return nil, ErrBookingConflict

		case errors.Is(err, reservationRepo.ErrDuplicateConfirmationCode):
			uc.logger.Error("CreateBooking: confirmation code space exhausted after %d attempts", confirmationCodeAttempts)
			return nil, fmt.Errorf("%w: %v", ErrDuplicateConfirmationCode, err)

		case errors.Is(err, ErrInternal):
			return nil, err

		default:
			// Неснимаемый конфликт сериализации - две заявки пытались
			// забронировать одни даты, наша проиграла гонку
			uc.logger.Warn("CreateBooking: transaction failed for package id=%d: %v", req.PackageID, err)
			uc.metrics.IncBookingConflict()
			return nil, fmt.Errorf("%w: %v", ErrBookingConflict, err)
		}
	}

	uc.metrics.IncReservationCreated()
	uc.logger.Info("CreateBooking: successfully created reservation id=%d code=%s",
		result.ID, result.ConfirmationCode)

	return fromDomain(result, req.Amount), nil
}

// resolveCustomer находит клиента по email или создает гостевой профиль
// с синтетическим NIC-плейсхолдером
func (uc *UseCase) resolveCustomer(ctx context.Context, info CustomerInfo) (*domain.Customer, error) {
	cust, err := uc.customerDir.GetByEmail(ctx, info.Email)
	if err == nil {
		return cust, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateBooking: failed to look up customer email=%s: %v", info.Email, err)
		return nil, fmt.Errorf("%w: failed to look up customer: %v", ErrInternal, err)
	}

	nic, err := generateGuestNIC()
	if err != nil {
		return nil, err
	}

	created, err := uc.customerDir.Create(ctx, &domain.Customer{
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Email:     info.Email,
		Phone:     info.Phone,
		NIC:       nic,
		IsGuest:   true,
	})
	if err != nil {
		// Конкурентная заявка того же гостя могла успеть первой -
		// перечитываем по email
		if errors.Is(err, customerRepo.ErrDuplicateIdentity) {
			existing, lookupErr := uc.customerDir.GetByEmail(ctx, info.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("%w: failed to re-read customer after duplicate: %v", ErrInternal, lookupErr)
			}
			return existing, nil
		}
		uc.logger.Error("CreateBooking: failed to provision guest customer email=%s: %v", info.Email, err)
		return nil, fmt.Errorf("%w: failed to provision guest customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: provisioned guest customer id=%d email=%s", created.ID, created.Email)
	return created, nil
}
