package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentwear/internal/core"
	"rentwear/internal/selection"

	"go.uber.org/zap"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown payment status")
	ErrInvalidTransition = errors.New("payment status transition not allowed")
	ErrStatusChanged     = errors.New("order payment status changed concurrently")
)

// Carts is the part of the selection service checkout needs.
type Carts interface {
	Drain(sessionID string) *selection.Snapshot
	Restore(sessionID string, entries []selection.Entry)
}

type Service struct {
	repo     Repository
	carts    Carts
	notifier core.Notifier
	now      func() time.Time
}

func NewService(repo Repository, carts Carts, notifier core.Notifier) *Service {
	return &Service{repo: repo, carts: carts, notifier: notifier, now: time.Now}
}

// Checkout turns the customer's cart into an order awaiting payment and
// empties the cart. If the order cannot be stored the cart is restored.
func (s *Service) Checkout(ctx context.Context, customerID string) (*Order, error) {
	snap := s.carts.Drain(customerID)
	if snap.Count == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		CustomerID:    customerID,
		Items:         make([]Item, 0, len(snap.Items)),
		Total:         snap.Total,
		PaymentStatus: StatusPendingPayment,
	}
	for _, e := range snap.Items {
		o.Items = append(o.Items, Item{
			ProductID:   e.Product.ID,
			ShopOwnerID: e.Product.OwnerID,
			Name:        e.Product.Name,
			PricePerDay: e.Product.PricePerDay,
			Days:        e.Days,
		})
	}

	if err := s.repo.Create(ctx, o); err != nil {
		s.carts.Restore(customerID, snap.Items)
		return nil, fmt.Errorf("create order: %w", err)
	}

	zap.S().Infof("order %s created for %s: %d items, total %.2f", o.ID, customerID, len(o.Items), o.Total)
	return o, nil
}

// Get returns an order visible to the caller. Other customers' orders
// are reported as not found.
func (s *Service) Get(ctx context.Context, callerID string, isAdmin bool, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.CustomerID != callerID {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpdatePaymentStatus records the outcome reported by the payment
// collaborator. Shop owners are notified once an order is paid.
func (s *Service) UpdatePaymentStatus(
	ctx context.Context,
	callerID string,
	isAdmin bool,
	id string,
	status string,
	reference string,
) (*Order, error) {

	status = strings.ToUpper(strings.TrimSpace(status))
	if !knownStatus(status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.Get(ctx, callerID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(current.PaymentStatus, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.PaymentStatus, status)
	}

	updated, err := s.repo.UpdatePayment(ctx, id, current.PaymentStatus, status, strings.TrimSpace(reference), s.now())
	if err != nil {
		return nil, err
	}

	if status == StatusPaid {
		s.notifyOwners(ctx, updated)
	}
	return updated, nil
}

func (s *Service) notifyOwners(ctx context.Context, o *Order) {
	if s.notifier == nil {
		return
	}
	for _, owner := range o.shopOwners() {
		var names []string
		for _, it := range o.Items {
			if it.ShopOwnerID == owner {
				names = append(names, fmt.Sprintf("%s (%d days)", it.Name, it.Days))
			}
		}
		body := "Paid rental: " + strings.Join(names, ", ")
		if err := s.notifier.Notify(ctx, owner, "New paid order", body); err != nil {
			zap.L().Warn("order notification failed",
				zap.String("order_id", o.ID),
				zap.String("owner_id", owner),
				zap.Error(err),
			)
		}
	}
}
