package orders

import "time"

const (
	StatusPendingPayment = "PENDING_PAYMENT"
	StatusPaid           = "PAID"
	StatusFailed         = "FAILED"
	StatusCancelled      = "CANCELLED"
)

// transitions lists the payment statuses reachable from each status.
// PAID and CANCELLED are terminal.
var transitions = map[string][]string{
	StatusPendingPayment: {StatusPaid, StatusFailed, StatusCancelled},
	StatusFailed:         {StatusPendingPayment},
}

func canTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func knownStatus(s string) bool {
	switch s {
	case StatusPendingPayment, StatusPaid, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Item is a cart entry frozen at checkout.
type Item struct {
	ProductID   string  `json:"product_id"`
	ShopOwnerID string  `json:"-"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"price_per_day"`
	Days        int     `json:"days"`
}

func (i Item) Subtotal() float64 {
	return float64(i.Days) * i.PricePerDay
}

type Order struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	Items            []Item    `json:"items"`
	Total            float64   `json:"total"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// shopOwners returns each distinct owner once, in item order.
func (o *Order) shopOwners() []string {
	seen := make(map[string]bool, len(o.Items))
	var owners []string
	for _, it := range o.Items {
		if it.ShopOwnerID == "" || seen[it.ShopOwnerID] {
			continue
		}
		seen[it.ShopOwnerID] = true
		owners = append(owners, it.ShopOwnerID)
	}
	return owners
}
