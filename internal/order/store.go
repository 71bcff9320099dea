package order

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"

	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

// Store keeps the session's order history, most recent first. Orders are
// never deleted.
type Store struct {
	mu     sync.RWMutex
	orders []Order
	blobs  storage.Store
	clk    clock.Clock
}

// NewStore builds the order store for a session, restoring any history
// persisted from a previous visit.
func NewStore(blobs storage.Store, clk clock.Clock) *Store {
	s := &Store{blobs: blobs, clk: clk}
	b, err := blobs.Get(context.Background(), StorageKey)
	if err != nil {
		return s
	}

	var st struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(b, &st); err != nil {
		log.Printf("order: discarding malformed %s blob: %v", StorageKey, err)
		return s
	}
	s.orders = st.Orders
	return s
}

// AddOrder stamps the draft with a fresh id and creation time and
// prepends it: the newest order is always first.
func (s *Store) AddOrder(ctx context.Context, d Draft) (Order, error) {
	status := d.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return Order{}, ErrUnknownStatus
	}

	ord := Order{
		ID:              uuid.NewString(),
		Items:           append([]cart.Item(nil), d.Items...),
		Total:           d.Total,
		Status:          status,
		CreatedAt:       s.clk.Now().UTC().Format(time.RFC3339),
		ShippingAddress: d.ShippingAddress,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]Order{ord}, s.orders...)
	s.persistLocked(ctx)
	return ord, nil
}

// Orders returns the history, most recent first.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Get returns the order with the given id.
func (s *Store) Get(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ord := range s.orders {
		if ord.ID == id {
			return ord, true
		}
	}
	return Order{}, false
}

// UpdateStatus moves an order along the fulfilment pipeline. An unknown
// id is silently ignored; an illegal transition is a *TransitionError.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ord := range s.orders {
		if ord.ID != id {
			continue
		}
		if !ord.Status.CanTransitionTo(status) {
			return &TransitionError{OrderID: id, From: ord.Status, To: status}
		}
		s.orders[i].Status = status
		s.persistLocked(ctx)
		return nil
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) {
	st := struct {
		Orders []Order `json:"orders"`
	}{Orders: s.orders}

	b, err := json.Marshal(st)
	if err == nil {
		err = s.blobs.Set(ctx, StorageKey, b)
	}
	if err != nil {
		log.Printf("order: persist failed: %v", err)
	}
}
