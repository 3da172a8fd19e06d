package payments

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentAlreadyExists возвращается, когда у резервации уже есть платёж
	ErrPaymentAlreadyExists = errors.New("reservation already has a payment")

	// ErrUnsupportedMethod возвращается при неизвестном способе оплаты
	ErrUnsupportedMethod = errors.New("unsupported payment method")

	// ErrNoStrategySelected возвращается при попытке оплаты без выбранной стратегии
	ErrNoStrategySelected = errors.New("no payment strategy selected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
