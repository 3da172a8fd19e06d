package mailer

import "github.com/m04kA/TT-ReservationService/internal/domain"

// LogSink реализация NotificationSink, которая только логирует.
// Используется, когда отправка уведомлений выключена в конфигурации.
type LogSink struct {
	log Logger
}

// NewLogSink создает новый экземпляр лог-заглушки
func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

// SendConfirmation логирует уведомление вместо отправки
func (s *LogSink) SendConfirmation(rsv *domain.Reservation) {
	s.log.Info("notifications disabled: confirmation for reservation %s (status=%s) not sent",
		rsv.ConfirmationCode, rsv.Status)
}
