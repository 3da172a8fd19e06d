package assign_guide

import (
	"context"

	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	AssignGuide(ctx context.Context, id int64, req *models.AssignGuideRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
