package orders

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)

	// UpdatePayment moves an order from one status to another. It returns
	// ErrStatusChanged when the order is no longer in status from.
	UpdatePayment(ctx context.Context, id, from, to, reference string, at time.Time) (*Order, error)
}
