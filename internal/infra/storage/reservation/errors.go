package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateConfirmationCode возвращается при нарушении уникальности
	// кода подтверждения; ошибка retryable - нужно сгенерировать новый код
	ErrDuplicateConfirmationCode = errors.New("reservation.repository: duplicate confirmation code")

	// ErrDeleteConstraint возвращается, когда физическое удаление
	// заблокировано связанными записями (например, платежом)
	ErrDeleteConstraint = errors.New("reservation.repository: delete blocked by related records")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
