package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CanTransitionTo enforces the order lifecycle: pending → confirmed →
// shipped → delivered, with cancellation allowed from any non-delivered
// state. Whether a delivered order can be cancelled (returns/refunds) is an
// open product decision and is rejected here.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderStatusConfirmed:
		return s == OrderStatusPending
	case OrderStatusShipped:
		return s == OrderStatusConfirmed
	case OrderStatusDelivered:
		return s == OrderStatusShipped
	case OrderStatusCancelled:
		return s != OrderStatusDelivered && s != OrderStatusCancelled
	default:
		return false
	}
}

// CanTransitionTo for payments: pending → paid|failed, paid → refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch next {
	case PaymentStatusPaid, PaymentStatusFailed:
		return s == PaymentStatusPending
	case PaymentStatusRefunded:
		return s == PaymentStatusPaid
	default:
		return false
	}
}

type GeoPoint struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// ShippingAddress is embedded in the order as a snapshot, not a reference,
// so later edits to the user's saved addresses never alter placed orders.
type ShippingAddress struct {
	FullName     string   `json:"full_name"`
	Mobile       string   `json:"mobile"`
	Email        string   `json:"email"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	Landmark     string   `json:"landmark"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Country      string   `json:"country"`
	Location     GeoPoint `json:"location"`
}

// OrderItem is a copied snapshot of a cart line priced at checkout time.
// Catalog changes after checkout never alter it.
type OrderItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Images        []string  `json:"images"`
	Unit          string    `json:"unit"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	OfferPrice    float64   `json:"offer_price"`
	PercentageOff int       `json:"percentage_off"`
	LineTotal     float64   `json:"line_total"`
}

type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

type Order struct {
	ID      uuid.UUID  `json:"id"`
	UserID  uuid.UUID  `json:"user_id"`
	StoreID *uuid.UUID `json:"store_id,omitempty"`

	Items []OrderItem `json:"items"`

	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	GrandTotal    float64 `json:"grand_total"`

	Status        OrderStatus   `json:"status"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	ShippingAddress ShippingAddress `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`

	StatusHistory []StatusChange `json:"status_history,omitempty"`

	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAtIST string    `json:"created_at_ist,omitempty"`
	UpdatedAtIST string    `json:"updated_at_ist,omitempty"`
}

type CheckoutRequest struct {
	StoreID       *uuid.UUID `json:"store_id,omitempty"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,oneof=cod upi card netbanking wallet other"`

	FullName     string   `json:"full_name"`
	Mobile       string   `json:"mobile"`
	Email        string   `json:"email" validate:"omitempty,email"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	Landmark     string   `json:"landmark"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Accuracy     *float64 `json:"accuracy,omitempty"`

	Notes string `json:"notes"`
}

// UpdateOrderStatusRequest updates either state axis; at least one field
// must be present.
type UpdateOrderStatusRequest struct {
	Status        *OrderStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid failed refunded"`
}

/// StoreOrderStatusRequest is the store-owner variant: status only, and
// never back to pending.
type StoreOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=confirmed shipped delivered cancelled"`
}

// OrderListFilter narrows order listings. Scope selects global vs.
// store-scoped orders for user-facing lists; StoreID pins a vendor view.
type OrderListFilter struct {
	UserID    *uuid.UUID
	StoreID   *uuid.UUID
	Scope     string // "", "global" or "store"
	Status    OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}

type StoreOrderStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Confirmed    int     `json:"confirmed"`
	Shipped      int     `json:"shipped"`
	Delivered    int     `json:"delivered"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"total_revenue"`
}

type RevenueWindow struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type StoreDashboard struct {
	TodaysOrders  RevenueWindow   `json:"todays_orders"`
	MonthsOrders  RevenueWindow   `json:"months_orders"`
	AllTime       StoreOrderStats `json:"all_time"`
	AvgOrderValue float64         `json:"avg_order_value"`
}
