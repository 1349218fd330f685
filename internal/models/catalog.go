package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a read-only view of the catalog. StoreID is nil for products
// in the marketplace's own catalog.
type Product struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       *uuid.UUID `json:"store_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Images        []string   `json:"images"`
	Price         float64    `json:"price"`
	OfferPrice    *float64   `json:"offer_price,omitempty"`
	StockQuantity int        `json:"stock_quantity"`
	Unit          string     `json:"unit"`
	IsActive      bool       `json:"is_active"`
	IsDeleted     bool       `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SellingPrice is the offer price when one is set, else the list price.
func (p *Product) SellingPrice() float64 {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}

	return p.Price
}

type Store struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"image_url,omitempty"`
	City         string    `json:"city,omitempty"`
	ManagerName  string    `json:"manager_name,omitempty"`
	ManagerPhone string    `json:"manager_phone,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
