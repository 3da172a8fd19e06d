package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TT-ReservationService/internal/api/handlers"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
// При наличии привязанного платежа вместо удаления выполняется отмена
// с возвратом платежа, ответ 200 с описанием результата
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Delete(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Reservation not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete reservation: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Outcome == models.OutcomeDeleted {
		h.logger.Info("DELETE /bookings/{id} - Reservation deleted: booking_id=%d", bookingID)
	} else {
		h.logger.Info("DELETE /bookings/{id} - Reservation soft-cancelled: booking_id=%d", bookingID)
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
