package models

import (
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// Request модели

// ProcessPaymentRequest запрос на проведение платежа по резервации
type ProcessPaymentRequest struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	PaymentDate   time.Time `json:"paymentDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ExpireResponse результат зачистки просроченных платежей
type ExpireResponse struct {
	Expired int `json:"expired"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		Method:        string(p.Method),
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
