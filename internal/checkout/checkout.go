package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/juju/clock"

	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("invalid shipping address")
)

// Service turns the session cart into a pending order as one command:
// either the order is created and the cart cleared, or nothing changes.
type Service struct {
	clk     clock.Clock
	latency time.Duration
}

func NewService(clk clock.Clock, latency time.Duration) *Service {
	return &Service{clk: clk, latency: latency}
}

// PlaceOrder validates the address, waits the mock latency, snapshots the
// cart, records the order (handing a copy to the vendor store when it
// owns any purchased product) and finally clears the cart. The order
// total is computed from the snapshot, so it always matches the items.
func (s *Service) PlaceOrder(ctx context.Context, ct *cart.Cart, orders *order.Store, vendors *vendor.Store, addr order.ShippingAddress) (order.Order, error) {
	if err := validateAddress(addr); err != nil {
		return order.Order{}, err
	}
	if ct.Len() == 0 {
		return order.Order{}, ErrEmptyCart
	}

	if err := s.wait(ctx); err != nil {
		return order.Order{}, err
	}

	// snapshot after the simulated latency so the order reflects the
	// cart at commit time
	items := ct.Items()
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}

	ord, err := orders.AddOrder(ctx, order.Draft{
		Items:           items,
		Total:           total,
		Status:          order.StatusPending,
		ShippingAddress: addr,
	})
	if err != nil {
		return order.Order{}, err
	}

	if vendors != nil && vendors.OwnsAny(items) {
		vendors.RecordOrder(ctx, ord)
	}

	ct.Clear()
	return ord, nil
}

// validateAddress enforces the same minimum lengths as the checkout
// form.
func validateAddress(a order.ShippingAddress) error {
	if len(a.Street) < 5 || len(a.City) < 2 || len(a.State) < 2 || len(a.Zip) < 5 {
		return ErrInvalidAddress
	}
	return nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-s.clk.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
