package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда SendGrid отклонил письмо.
	// Ошибка только логируется - доставка уведомлений best-effort
	// и не откатывает успешную операцию.
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrNoAPIKey возвращается, когда SENDGRID_API_KEY не задан
	ErrNoAPIKey = errors.New("mailer: SENDGRID_API_KEY is not set")
)
