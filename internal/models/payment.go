package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentState is the lifecycle of a payment record, independent of the
// order's paymentStatus axis.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

const (
	PaymentMethodCOD        = "cod"
	PaymentMethodUPI        = "upi"
	PaymentMethodCard       = "card"
	PaymentMethodNetBanking = "netbanking"
	PaymentMethodWallet     = "wallet"
)

// Payment is created before or during checkout and linked to an order
// afterwards; OrderID stays nil until the link happens.
type Payment struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	OrderID         *uuid.UUID     `json:"order_id,omitempty"`
	Method          string         `json:"payment_method"`
	Amount          float64        `json:"amount"`
	Currency        string         `json:"currency"`
	Status          PaymentState   `json:"status"`
	TransactionID   string         `json:"transaction_id,omitempty"`
	GatewayIntentID string         `json:"-"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	IsDeleted       bool           `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	CreatedAtIST    string         `json:"created_at_ist,omitempty"`
	UpdatedAtIST    string         `json:"updated_at_ist,omitempty"`
}

type InitiatePaymentRequest struct {
	Method   string         `json:"payment_method" validate:"required,oneof=cod upi card netbanking wallet"`
	Amount   float64        `json:"amount" validate:"required,gt=0"`
	OrderID  *uuid.UUID     `json:"order_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type LinkPaymentRequest struct {
	OrderID       uuid.UUID `json:"order_id" validate:"required"`
	TransactionID string    `json:"transaction_id"`
}
