package domain

import "time"

// PaymentStatus represents the outcome state of a payment record
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod identifies one of the fixed payment strategies
type PaymentMethod string

const (
	MethodCreditCard    PaymentMethod = "credit_card"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
	MethodDigitalWallet PaymentMethod = "digital_wallet"
	MethodCash          PaymentMethod = "cash"
)

// Valid returns true if the method is one of the known payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodBankTransfer, MethodDigitalWallet, MethodCash:
		return true
	}
	return false
}

// Payment is a payment record linked to at most one reservation
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Status        PaymentStatus
	Method        PaymentMethod
	PaymentDate   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
