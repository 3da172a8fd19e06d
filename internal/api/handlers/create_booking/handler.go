package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TT-ReservationService/internal/api/handlers"
	createBooking "github.com/m04kA/TT-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgPackageNotFound    = "туристический пакет не найден"
	msgBookingConflict    = "пакет недоступен на выбранные даты"
	msgCodeExhausted      = "не удалось сгенерировать код подтверждения, повторите запрос"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking conflict: package_id=%d, dates=%s..%s",
				req.PackageID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package_id=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: package_id=%d", req.PackageID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createBooking.ErrDuplicateConfirmationCode):
			// Исчерпаны попытки генерации кода, клиент может повторить запрос
			h.logger.Warn("POST /bookings - Confirmation code attempts exhausted: package_id=%d", req.PackageID)
			handlers.RespondConflict(w, msgCodeExhausted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: package_id=%d", req.PackageID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: package_id=%d, error=%v",
				req.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, code=%s, package_id=%d",
		result.ID, result.ConfirmationCode, req.PackageID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
