package check_availability

import "time"

// Request модель запроса на проверку доступности пакета
type Request struct {
	PackageID int64     // ID туристического пакета
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// Response модель ответа проверки доступности
type Response struct {
	PackageID int64     // ID пакета
	StartDate time.Time // Запрошенное начало
	EndDate   time.Time // Запрошенный конец
	Available bool      // true, если активных пересечений нет
}
