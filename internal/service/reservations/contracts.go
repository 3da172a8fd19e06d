package reservations

import (
	"context"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	AssignGuide(ctx context.Context, id int64, guideID int64) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	RefundByReservationID(ctx context.Context, reservationID int64) error
}

// GuideDirectory интерфейс справочника гидов
type GuideDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// NotificationSink интерфейс для отправки уведомлений клиентам
type NotificationSink interface {
	SendConfirmation(rsv *domain.Reservation)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
