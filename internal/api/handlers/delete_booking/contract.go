package delete_booking

import (
	"context"

	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Delete(ctx context.Context, id int64) (*models.DeleteReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
