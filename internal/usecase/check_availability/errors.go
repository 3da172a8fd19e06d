package check_availability

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("check_availability: package not found")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	// (отсутствующие даты либо end раньше start)
	ErrInvalidDateRange = errors.New("check_availability: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
