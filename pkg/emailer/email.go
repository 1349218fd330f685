package emailer

import (
	"context"
	"fmt"

	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService delivers order lifecycle notifications. Sends are
// best-effort; callers log failures and move on.
type EmailService interface {
	SendOrderStatusUpdate(ctx context.Context, order *models.Order) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) SendOrderStatusUpdate(ctx context.Context, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(order.ShippingAddress.FullName, order.ShippingAddress.Email)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Your order is now %s", order.Status)
	message.AddPersonalizations(personalization)

	body := fmt.Sprintf(
		"Hi %s,\n\nYour order placed on %s is now %s.\nOrder total: %.2f\n\nThank you for shopping with us.",
		order.ShippingAddress.FullName, order.CreatedAtIST, order.Status, order.GrandTotal,
	)
	message.AddContent(mail.NewContent("text/plain", body))

	response, err := e.client.Send(message)

	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
