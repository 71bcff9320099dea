package order

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus is returned when a status value is not part of the
// fulfilment pipeline at all.
var ErrUnknownStatus = errors.New("unknown order status")

// Status is an order's position in the fulfilment pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// next maps each status to its single legal successor. Delivered has
// none.
var next = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// Valid reports whether s names a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to target is a legal
// forward step. Backward and skipped steps are rejected.
func (s Status) CanTransitionTo(target Status) bool {
	return target != "" && next[s] == target
}

// TransitionError reports an attempt to move an order through an illegal
// status change, e.g. delivered back to pending.
type TransitionError struct {
	OrderID string
	From    Status
	To      Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: illegal status transition %s -> %s", e.OrderID, e.From, e.To)
}
