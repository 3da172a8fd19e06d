package create_booking

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	// (отсутствующие даты либо end раньше start)
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrBookingConflict возвращается, когда запрошенный диапазон
	// пересекается с активным бронированием пакета
	ErrBookingConflict = errors.New("create_booking: package not available for selected dates")

	// ErrDuplicateConfirmationCode возвращается, когда все попытки
	// сгенерировать уникальный код подтверждения исчерпаны;
	// ошибка retryable
	ErrDuplicateConfirmationCode = errors.New("create_booking: duplicate confirmation code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
