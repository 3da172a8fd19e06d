package create_booking

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса.
// Ошибки дат отделены от прочих ошибок входа: некорректный диапазон -
// это ErrInvalidDateRange независимо от валидности пакета и клиента.
func validateRequest(req *Request) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.Email) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.FirstName) == "" {
		return fmt.Errorf("%w: customer first name is required", ErrInvalidInput)
	}

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrInvalidDateRange)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidDateRange)
	}

	return nil
}
