package confirm_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TT-ReservationService/internal/api/handlers"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgGuideNotFound      = "гид не найден"
	msgCannotConfirm      = "бронирование не может быть подтверждено из текущего статуса"
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

// Handle POST /api/v1/bookings/{bookingId}/confirm
// Тело запроса опционально: гида можно назначить сразу при подтверждении
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Reservation not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrGuideNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Guide not found: booking_id=%d, guide_id=%v",
				bookingID, req.GuideID)
			handlers.RespondNotFound(w, msgGuideNotFound)

		case errors.Is(err, reservations.ErrIllegalTransition):
			h.logger.Warn("POST /bookings/{id}/confirm - Cannot confirm: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm reservation: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Reservation confirmed successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
