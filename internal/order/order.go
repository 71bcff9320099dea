package order

import (
	"github.com/eshoplabs/e-shop-backend/internal/cart"
)

const (
	// StorageKey names the blob holding the session's order history.
	StorageKey = "order-storage"
	// ContextKey is where the session middleware parks the store.
	ContextKey = "orders"
)

// ShippingAddress is captured at checkout. Fields are validated at the
// form boundary before they reach the store.
type ShippingAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Order is immutable once created except for its status. Items are value
// copies of the cart at checkout time, not live references, and Total is
// fixed at creation.
type Order struct {
	ID              string          `json:"id"`
	Items           []cart.Item     `json:"items"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Draft carries the caller-supplied fields of a new order; the store
// fills in the id and creation time.
type Draft struct {
	Items           []cart.Item
	Total           float64
	Status          Status
	ShippingAddress ShippingAddress
}
