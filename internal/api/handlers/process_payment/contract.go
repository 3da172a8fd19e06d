package process_payment

import (
	"context"

	"github.com/m04kA/TT-ReservationService/internal/service/payments/models"
)

type PaymentService interface {
	Process(ctx context.Context, reservationID int64, req *models.ProcessPaymentRequest) (*models.PaymentResponse, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
