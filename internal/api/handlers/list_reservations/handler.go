package list_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TT-ReservationService/internal/api/handlers"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations"
	"github.com/m04kA/TT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidLimit      = "некорректное значение limit"
	msgInvalidStatus     = "некорректный статус резервации"
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

// Handle GET /api/v1/reservations?customerId=&status=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListReservationsRequest{}

	if customerIDStr := query.Get("customerId"); customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid customer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		req.CustomerID = &customerID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.logger.Warn("GET /reservations - Invalid limit: %s", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("GET /reservations - Invalid status filter: %v", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: count=%d", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
