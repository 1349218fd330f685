package gateway

import (
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
)

// Client is the payment gateway behind online methods (upi, card,
// netbanking, wallet). Cash on delivery never touches it.
type Client interface {
	CreatePaymentIntent(amount int64, currency string, description string, customerRef string) (*stripe.PaymentIntent, error)
	ConfirmPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error)
	RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error)
}

type stripeGateway struct{}

func NewStripeGateway(apiKey string) Client {
	stripe.Key = apiKey

	return &stripeGateway{}
}

// CreatePaymentIntent opens a "planned payment" for the given amount in the
// currency's smallest unit (paise for INR).
func (s *stripeGateway) CreatePaymentIntent(amount int64, currency string, description string, customerRef string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}

	if customerRef != "" {
		params.AddMetadata("user_id", customerRef)
	}

	return paymentintent.New(params)
}

func (s *stripeGateway) ConfirmPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	return paymentintent.Confirm(paymentIntentID, nil)
}

func (s *stripeGateway) RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amount),
	}

	return refund.New(params)
}
