package create_booking

import (
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	createBooking "github.com/m04kA/TT-ReservationService/internal/usecase/create_booking"
)

// CustomerPayload контактные данные клиента
type CustomerPayload struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Customer  CustomerPayload `json:"customer"`
	PackageID int64           `json:"packageId"`
	StartDate string          `json:"startDate"` // "2026-07-01"
	EndDate   string          `json:"endDate"`   // "2026-07-05", включительно
	Amount    float64         `json:"amount"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	ConfirmationCode string  `json:"confirmationCode"`
	CustomerID       int64   `json:"customerId"`
	PackageID        int64   `json:"packageId"`
	Status           string  `json:"status"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	Amount           float64 `json:"amount"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Customer: createBooking.CustomerInfo{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		PackageID: r.PackageID,
		StartDate: startDate,
		EndDate:   endDate,
		Amount:    r.Amount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		CustomerID:       resp.CustomerID,
		PackageID:        resp.PackageID,
		Status:           resp.Status,
		StartDate:        resp.StartDate.Format(domain.DateFormat),
		EndDate:          resp.EndDate.Format(domain.DateFormat),
		Amount:           resp.Amount,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
