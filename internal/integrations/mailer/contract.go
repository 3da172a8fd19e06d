package mailer

import (
	"context"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// CustomerDirectory интерфейс для получения адресата письма
type CustomerDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
