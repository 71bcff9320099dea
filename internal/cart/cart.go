package cart

import (
	"sync"

	"github.com/eshoplabs/e-shop-backend/internal/catalog"
)

// ContextKey is where the session middleware parks the cart.
const ContextKey = "cart"

// Item is a product snapshot plus the quantity selected. Identity follows
// the source product id, so adding the same product twice increments the
// quantity instead of duplicating the entry.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is the session-scoped collection of selected products, kept in
// insertion order. It is ephemeral: it lives only as long as the session
// and is never persisted.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem puts a product in the cart, incrementing the quantity when the
// product is already present.
func (c *Cart) AddItem(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
}

// RemoveItem drops the item with the given product id. Removing an absent
// id is a no-op, not an error.
func (c *Cart) RemoveItem(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(id)
}

func (c *Cart) remove(id int) {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for an item. A quantity of zero or
// less removes the item entirely.
func (c *Cart) UpdateQuantity(id, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.remove(id)
		return
	}
	for i, it := range c.items {
		if it.ID == id {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns the current line items in insertion order.
func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed from the current item set on every call, so it can
// never drift from the items.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Len reports the number of distinct line items.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
