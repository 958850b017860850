package core

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned by ProductReader when no product has the id.
var ErrProductNotFound = errors.New("product not found")

// Product is the catalog snapshot other modules carry around. It is copied
// by value so a later catalog edit never changes an existing cart or order.
type Product struct {
	ID          string  `json:"id"`
	ShopID      string  `json:"shop_id"`
	OwnerID     string  `json:"owner_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"price_per_day"`
	Available   bool    `json:"available"`
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}
