package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error)
	ExistsActiveOverlap(ctx context.Context, packageID int64, start, end time.Time) (bool, error)
}

// CustomerDirectory интерфейс справочника клиентов
type CustomerDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// PackageCatalog интерфейс каталога пакетов
type PackageCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.TourPackage, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс счетчиков бизнес-метрик
type Metrics interface {
	IncReservationCreated()
	IncBookingConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
