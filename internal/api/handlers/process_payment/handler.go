package process_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TT-ReservationService/internal/api/handlers"
	"github.com/m04kA/TT-ReservationService/internal/service/payments"
	"github.com/m04kA/TT-ReservationService/internal/service/payments/models"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReservationNotFound  = "бронирование не найдено"
	msgPaymentNotFound      = "платёж не найден"
	msgPaymentAlreadyExists = "у бронирования уже есть платёж"
	msgUnsupportedMethod    = "неподдерживаемый способ оплаты"
	msgInvalidAmount        = "некорректная сумма платежа"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.ProcessPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Process(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReservationNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Reservation not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, payments.ErrPaymentAlreadyExists):
			h.logger.Warn("POST /bookings/{id}/payment - Payment already exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPaymentAlreadyExists)

		case errors.Is(err, payments.ErrUnsupportedMethod):
			h.logger.Warn("POST /bookings/{id}/payment - Unsupported method: booking_id=%d, method=%s",
				bookingID, req.Method)
			handlers.RespondBadRequest(w, msgUnsupportedMethod)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid amount: booking_id=%d, amount=%.2f",
				bookingID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to process payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment processed: booking_id=%d, payment_id=%d, status=%s",
		bookingID, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/bookings/{bookingId}/payment
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetByReservationID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /bookings/{id}/payment - Payment not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/payment - Failed to get payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/payment - Payment retrieved: booking_id=%d, payment_id=%d",
		bookingID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
