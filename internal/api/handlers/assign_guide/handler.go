package assign_guide

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
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidGuideID     = "некорректный ID гида"
	msgNotFound           = "бронирование не найдено"
	msgGuideNotFound      = "гид не найден"
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

// Handle POST /api/v1/bookings/{bookingId}/guide
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/guide - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.AssignGuideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/guide - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignGuide(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /bookings/{id}/guide - Reservation not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrGuideNotFound):
			h.logger.Warn("POST /bookings/{id}/guide - Guide not found: booking_id=%d, guide_id=%d",
				bookingID, req.GuideID)
			handlers.RespondNotFound(w, msgGuideNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/guide - Invalid guide ID: booking_id=%d, guide_id=%d",
				bookingID, req.GuideID)
			handlers.RespondBadRequest(w, msgInvalidGuideID)

		default:
			h.logger.Error("POST /bookings/{id}/guide - Failed to assign guide: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/guide - Guide assigned successfully: booking_id=%d, guide_id=%d",
		bookingID, req.GuideID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
