package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
)

// Claims is the resolved caller identity. The core treats UserID as opaque;
// where it came from (bearer token or the trusted-header mode) is the
// middleware's concern. StoreID is set for store-owner tokens.
type Claims struct {
	UserID  uuid.UUID  `json:"uid"`
	Role    string     `json:"role"`
	StoreID *uuid.UUID `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// OwnsStore reports whether the caller may act for the given store. Admins
// may act for any store.
func (c *Claims) OwnsStore(storeID uuid.UUID) bool {
	if c.IsAdmin() {
		return true
	}

	return c.Role == RoleStoreOwner && c.StoreID != nil && *c.StoreID == storeID
}
