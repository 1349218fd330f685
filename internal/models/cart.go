package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a user's cart. StoreID is nil for items from the
// marketplace's own catalog and set for items tied to a vendor store. The
// (ProductID, StoreID) pair is unique within a cart.
type CartItem struct {
	ProductID       uuid.UUID  `json:"product_id"`
	StoreID         *uuid.UUID `json:"store_id,omitempty"`
	Quantity        int        `json:"quantity"`
	PriceAtAdd      float64    `json:"price_at_add"`
	OfferPriceAtAdd float64    `json:"offer_price_at_add"`
	Unit            string     `json:"unit"`

	// Product carries current catalog details for display responses. It is
	// populated on reads and never persisted; checkout re-resolves the
	// catalog itself.
	Product *Product `json:"product,omitempty"`
}

// MatchesScope reports whether the item belongs to the given store scope
// (nil scope selects global items).
func (i *CartItem) MatchesScope(storeID *uuid.UUID) bool {
	return SameStoreScope(i.StoreID, storeID)
}

func SameStoreScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	IsDeleted bool       `json:"-"`

	// Version guards read-modify-write cycles on the item list. Updates
	// only apply when the stored version still matches.
	Version int64 `json:"-"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAtIST string    `json:"created_at_ist,omitempty"`
	UpdatedAtIST string    `json:"updated_at_ist,omitempty"`
}

// FindItem returns the index of the line matching (productID, storeID), or -1.
func (c *Cart) FindItem(productID uuid.UUID, storeID *uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].MatchesScope(storeID) {
			return i
		}
	}

	return -1
}

// ItemsInScope returns the lines matching the store scope, preserving order.
func (c *Cart) ItemsInScope(storeID *uuid.UUID) []CartItem {
	var items []CartItem

	for i := range c.Items {
		if c.Items[i].MatchesScope(storeID) {
			items = append(items, c.Items[i])
		}
	}

	return items
}

// ItemsOutOfScope is the complement of ItemsInScope.
func (c *Cart) ItemsOutOfScope(storeID *uuid.UUID) []CartItem {
	var items []CartItem

	for i := range c.Items {
		if !c.Items[i].MatchesScope(storeID) {
			items = append(items, c.Items[i])
		}
	}

	return items
}

type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	StoreID   *uuid.UUID `json:"store_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	StoreID   *uuid.UUID `json:"store_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

type DecreaseItemRequest struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"required"`
	StoreID     *uuid.UUID `json:"store_id,omitempty"`
	DecrementBy int        `json:"decrement_by" validate:"omitempty,min=1"`
}
