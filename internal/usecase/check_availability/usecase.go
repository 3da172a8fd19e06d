package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	packageRepo "github.com/m04kA/TT-ReservationService/internal/infra/storage/tourpackage"
)

// UseCase use case проверки доступности пакета на диапазон дат.
// Проверка read-only и не гарантирует атомарность "проверка-бронирование":
// результат может устареть к моменту создания бронирования, финальную
// защиту дает сериализуемая транзакция в create_booking.
type UseCase struct {
	reservationRepo ReservationRepository
	packageCatalog  PackageCatalog
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	packageCatalog PackageCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		packageCatalog:  packageCatalog,
		logger:          logger,
	}
}

// Execute выполняет проверку доступности.
// Пакет доступен, если ни одно активное бронирование (pending/confirmed)
// не пересекается с запрошенным закрытым интервалом [start, end].
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: package=%d, start=%s, end=%s",
		req.PackageID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.packageCatalog.GetByID(ctx, req.PackageID); err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CheckAvailability: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	overlap, err := uc.reservationRepo.ExistsActiveOverlap(ctx, req.PackageID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("CheckAvailability: overlap check failed for package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: package=%d available=%t", req.PackageID, !overlap)

	return &Response{
		PackageID: req.PackageID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Available: !overlap,
	}, nil
}
