package selection

import (
	"context"
	"errors"
	"fmt"

	"rentwear/internal/core"
)

// MaxRentalDays caps a single entry's rental duration.
const MaxRentalDays = 90

var (
	ErrMissingProduct     = errors.New("product_id is required")
	ErrInvalidDays        = fmt.Errorf("days must be between 1 and %d", MaxRentalDays)
	ErrProductUnavailable = errors.New("product is not available for rent")
)

// Snapshot is a read view of one cart.
type Snapshot struct {
	Items []Entry `json:"items"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

func snapshotOf(s *Store) *Snapshot {
	return &Snapshot{
		Items: s.Items(),
		Count: s.Count(),
		Total: s.AggregateValue(),
	}
}

// Service validates cart commands and applies them to the session's store.
type Service struct {
	carts    *Registry
	products core.ProductReader
}

func NewService(carts *Registry, products core.ProductReader) *Service {
	return &Service{carts: carts, products: products}
}

// Add puts a product in the cart for the given number of rental days, or
// changes the days of a product already there.
func (s *Service) Add(
	ctx context.Context,
	sessionID string,
	productID string,
	days int,
) (*Snapshot, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if days < 1 || days > MaxRentalDays {
		return nil, ErrInvalidDays
	}

	// catalog lookup happens outside the registry lock
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, ErrProductUnavailable
	}

	var snap *Snapshot
	s.carts.With(sessionID, func(st *Store) {
		st.Upsert(product, days)
		snap = snapshotOf(st)
	})
	return snap, nil
}

func (s *Service) Remove(sessionID, productID string) *Snapshot {
	var snap *Snapshot
	s.carts.With(sessionID, func(st *Store) {
		st.Remove(productID)
		snap = snapshotOf(st)
	})
	return snap
}

func (s *Service) Clear(sessionID string) {
	s.carts.With(sessionID, func(st *Store) { st.Clear() })
}

func (s *Service) Contains(sessionID, productID string) bool {
	var ok bool
	s.carts.Read(sessionID, func(st *Store) { ok = st.Contains(productID) })
	return ok
}

// View reads the cart without opening a session; a missing cart reads as
// empty.
func (s *Service) View(sessionID string) *Snapshot {
	snap := &Snapshot{Items: []Entry{}}
	s.carts.Read(sessionID, func(st *Store) { snap = snapshotOf(st) })
	return snap
}

// Drain returns the cart contents and empties it in one step, so a
// concurrent add either lands in the drained snapshot or in the new cart.
func (s *Service) Drain(sessionID string) *Snapshot {
	var snap *Snapshot
	s.carts.With(sessionID, func(st *Store) {
		snap = snapshotOf(st)
		st.Clear()
	})
	return snap
}

// Restore re-adds entries, used when checkout fails after Drain.
func (s *Service) Restore(sessionID string, entries []Entry) {
	s.carts.With(sessionID, func(st *Store) {
		for _, e := range entries {
			if !st.Contains(e.Product.ID) {
				st.Upsert(e.Product, e.Days)
			}
		}
	})
}

// Discard ends the session's cart.
func (s *Service) Discard(sessionID string) {
	s.carts.Discard(sessionID)
}
