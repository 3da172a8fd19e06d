package mailer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

const sendTimeout = 10 * time.Second

// Client отправляет письма о бронированиях через SendGrid.
// Отправка асинхронная и best-effort: ошибки доставки логируются и
// никогда не доходят до вызывающей операции.
type Client struct {
	fromEmail string
	fromName  string
	apiKey    string
	customers CustomerDirectory
	log       Logger
}

// NewClient создает новый экземпляр почтового клиента.
// API-ключ берется из переменной окружения SENDGRID_API_KEY.
func NewClient(fromEmail, fromName string, customers CustomerDirectory, log Logger) *Client {
	return &Client{
		fromEmail: fromEmail,
		fromName:  fromName,
		apiKey:    os.Getenv("SENDGRID_API_KEY"),
		customers: customers,
		log:       log,
	}
}

// SendConfirmation отправляет письмо-подтверждение по бронированию.
// Вызывается из операций ядра как fire-and-forget: метод возвращается
// сразу, отправка идет в отдельной горутине.
func (c *Client) SendConfirmation(rsv *domain.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := c.send(ctx, rsv); err != nil {
			c.log.Error("mailer: confirmation for reservation %s not delivered: %v",
				rsv.ConfirmationCode, err)
		}
	}()
}

func (c *Client) send(ctx context.Context, rsv *domain.Reservation) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	cust, err := c.customers.GetByID(ctx, rsv.CustomerID)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve customer id=%d: %v", ErrSendFailed, rsv.CustomerID, err)
	}

	subject := fmt.Sprintf("Your booking %s is %s", rsv.ConfirmationCode, rsv.Status)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your tour booking is %s.\n\n"+
			"Booking details:\n"+
			"Confirmation code: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n\n"+
			"Thank you for booking with us.",
		cust.FirstName,
		rsv.Status,
		rsv.ConfirmationCode,
		rsv.StartDate.Format(domain.DateFormat),
		rsv.EndDate.Format(domain.DateFormat),
	)

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(fmt.Sprintf("%s %s", cust.FirstName, cust.LastName), cust.Email)
	message := mail.NewSingleEmail(from, subject, to, plainBody, "")

	client := sendgrid.NewSendClient(c.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status=%d body=%s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	c.log.Info("mailer: confirmation for reservation %s sent to %s", rsv.ConfirmationCode, cust.Email)
	return nil
}
