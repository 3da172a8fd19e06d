package check_availability

import (
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/TT-ReservationService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	PackageID int64  `json:"packageId"`
	StartDate string `json:"startDate"` // "2026-07-01"
	EndDate   string `json:"endDate"`   // "2026-07-05", включительно
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PackageID int64  `json:"packageId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		PackageID: r.PackageID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		PackageID: resp.PackageID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Available: resp.Available,
	}
}
