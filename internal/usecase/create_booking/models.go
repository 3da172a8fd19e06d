package create_booking

import (
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// CustomerInfo контактные данные клиента из запроса на бронирование.
// Email используется как естественный ключ: существующий профиль
// переиспользуется, иначе создается гостевой.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// Request модель запроса на создание бронирования
type Request struct {
	Customer  CustomerInfo // Контактные данные клиента
	PackageID int64        // ID туристического пакета
	StartDate time.Time    // Дата заезда (включительно)
	EndDate   time.Time    // Дата выезда (включительно)
	Amount    float64      // Сумма к оплате (платеж обрабатывается отдельно)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	ConfirmationCode string
	CustomerID       int64
	PackageID        int64
	Status           string
	StartDate        time.Time
	EndDate          time.Time
	Amount           float64
	CreatedAt        time.Time
}

func fromDomain(rsv *domain.Reservation, amount float64) *Response {
	return &Response{
		ID:               rsv.ID,
		ConfirmationCode: rsv.ConfirmationCode,
		CustomerID:       rsv.CustomerID,
		PackageID:        rsv.PackageID,
		Status:           string(rsv.Status),
		StartDate:        rsv.StartDate,
		EndDate:          rsv.EndDate,
		Amount:           amount,
		CreatedAt:        rsv.CreatedAt,
	}
}
