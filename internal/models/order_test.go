package models_test

import (
	"testing"

	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to confirmed", models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{"confirmed to shipped", models.OrderStatusConfirmed, models.OrderStatusShipped, true},
		{"shipped to delivered", models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"confirmed to cancelled", models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{"shipped to cancelled", models.OrderStatusShipped, models.OrderStatusCancelled, true},

		{"pending skips to shipped", models.OrderStatusPending, models.OrderStatusShipped, false},
		{"pending skips to delivered", models.OrderStatusPending, models.OrderStatusDelivered, false},
		{"delivered cannot be cancelled", models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{"cancelled cannot be cancelled again", models.OrderStatusCancelled, models.OrderStatusCancelled, false},
		{"cancelled cannot resume", models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusConfirmed, false},
		{"no transition to pending", models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{"unknown target", models.OrderStatusPending, models.OrderStatus("returned"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.PaymentStatus
		to      models.PaymentStatus
		allowed bool
	}{
		{"pending to paid", models.PaymentStatusPending, models.PaymentStatusPaid, true},
		{"pending to failed", models.PaymentStatusPending, models.PaymentStatusFailed, true},
		{"paid to refunded", models.PaymentStatusPaid, models.PaymentStatusRefunded, true},

		{"pending cannot be refunded", models.PaymentStatusPending, models.PaymentStatusRefunded, false},
		{"failed cannot be refunded", models.PaymentStatusFailed, models.PaymentStatusRefunded, false},
		{"paid cannot fail", models.PaymentStatusPaid, models.PaymentStatusFailed, false},
		{"refunded is terminal", models.PaymentStatusRefunded, models.PaymentStatusPaid, false},
		{"no transition to pending", models.PaymentStatusPaid, models.PaymentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
