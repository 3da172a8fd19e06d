package payments

import (
	"fmt"
	"math/rand"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// RandFunc источник случайности для симуляции исхода платежа
// Возвращает значение в [0.0, 1.0)
type RandFunc func() float64

// Strategy стратегия проведения платежа конкретным способом
type Strategy interface {
	// Execute симулирует проведение платежа, true - платёж прошёл
	Execute(amount float64) bool
	// Name человекочитаемое название способа оплаты
	Name() string
}

// Вероятности успеха для каждого способа оплаты
const (
	creditCardSuccessRate    = 0.85
	bankTransferSuccessRate  = 0.95
	digitalWalletSuccessRate = 0.90
)

type creditCardStrategy struct {
	roll RandFunc
}

func (s creditCardStrategy) Execute(amount float64) bool { return s.roll() < creditCardSuccessRate }
func (s creditCardStrategy) Name() string                { return "Credit Card" }

type bankTransferStrategy struct {
	roll RandFunc
}

func (s bankTransferStrategy) Execute(amount float64) bool { return s.roll() < bankTransferSuccessRate }
func (s bankTransferStrategy) Name() string                { return "Bank Transfer" }

type digitalWalletStrategy struct {
	roll RandFunc
}

func (s digitalWalletStrategy) Execute(amount float64) bool {
	return s.roll() < digitalWalletSuccessRate
}
func (s digitalWalletStrategy) Name() string { return "Digital Wallet" }

// Оплата наличными фиксируется в момент передачи денег, всегда успешна
type cashStrategy struct{}

func (cashStrategy) Execute(amount float64) bool { return true }
func (cashStrategy) Name() string                { return "Cash" }

// NewStrategy создает стратегию для указанного способа оплаты
// При roll == nil используется math/rand
func NewStrategy(method domain.PaymentMethod, roll RandFunc) (Strategy, error) {
	if roll == nil {
		roll = rand.Float64
	}

	switch method {
	case domain.MethodCreditCard:
		return creditCardStrategy{roll: roll}, nil
	case domain.MethodBankTransfer:
		return bankTransferStrategy{roll: roll}, nil
	case domain.MethodDigitalWallet:
		return digitalWalletStrategy{roll: roll}, nil
	case domain.MethodCash:
		return cashStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}
