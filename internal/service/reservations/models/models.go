package models

import (
	"errors"
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса резервации
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ConfirmRequest запрос на подтверждение резервации
type ConfirmRequest struct {
	GuideID *int64 `json:"guideId,omitempty"`
}

// AssignGuideRequest запрос на назначение гида
type AssignGuideRequest struct {
	GuideID int64 `json:"guideId"`
}

// ListReservationsRequest запрос на получение списка резерваций
type ListReservationsRequest struct {
	CustomerID *int64  `json:"customerId,omitempty"`
	Status     *string `json:"status,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		CustomerID: r.CustomerID,
		Limit:      r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID               int64  `json:"id"`
	ConfirmationCode string `json:"confirmationCode"`
	CustomerID       int64  `json:"customerId"`
	PackageID        int64  `json:"packageId"`
	GuideID          *int64 `json:"guideId,omitempty"`
	Status           string `json:"status"`
	StartDate        string `json:"startDate"` // "2026-07-01"
	EndDate          string `json:"endDate"`   // "2026-07-05", включительно

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// DeleteOutcome результат операции удаления
type DeleteOutcome string

const (
	// OutcomeDeleted резервация физически удалена
	OutcomeDeleted DeleteOutcome = "deleted"

	// OutcomeSoftCancelled удаление заблокировано платежом, резервация отменена
	OutcomeSoftCancelled DeleteOutcome = "soft_cancelled"
)

// DeleteReservationResponse ответ на удаление резервации
type DeleteReservationResponse struct {
	Outcome     DeleteOutcome        `json:"outcome"`
	Reason      string               `json:"reason,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:               r.ID,
		ConfirmationCode: r.ConfirmationCode,
		CustomerID:       r.CustomerID,
		PackageID:        r.PackageID,
		GuideID:          r.GuideID,
		Status:           string(r.Status),
		StartDate:        r.StartDate.Format(domain.DateFormat),
		EndDate:          r.EndDate.Format(domain.DateFormat),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, rsv := range reservations {
		if rsvResp := FromDomainReservation(rsv); rsvResp != nil {
			resp.Reservations[i] = *rsvResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
