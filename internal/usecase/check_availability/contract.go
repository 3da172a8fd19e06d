package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ExistsActiveOverlap(ctx context.Context, packageID int64, start, end time.Time) (bool, error)
}

// PackageCatalog интерфейс каталога пакетов
type PackageCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.TourPackage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
