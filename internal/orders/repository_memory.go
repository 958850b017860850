package orders

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
	order  []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

func clone(o *Order) *Order {
	cp := *o
	cp.Items = slices.Clone(o.Items)
	return &cp
}

func (r *InMemoryRepository) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = uuid.New().String()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.orders[o.ID] = clone(o)
	r.order = append(r.order, o.ID)
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) ListByCustomer(_ context.Context, customerID string) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Order{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if o := r.orders[r.order[i]]; o.CustomerID == customerID {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdatePayment(_ context.Context, id, from, to, reference string, at time.Time) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if o.PaymentStatus != from {
		return nil, ErrStatusChanged
	}
	o.PaymentStatus = to
	if reference != "" {
		o.PaymentReference = reference
	}
	o.UpdatedAt = at
	return clone(o), nil
}
