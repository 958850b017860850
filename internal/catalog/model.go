package catalog

import (
	"time"

	"rentwear/internal/core"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

type Shop struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	City        string     `json:"city"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Product struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	OwnerID     string    `json:"owner_id"`
	City        string    `json:"city"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Size        string    `json:"size"`
	Description string    `json:"description"`
	PricePerDay float64   `json:"price_per_day"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot converts the product into the shape carts and orders hold.
func (p *Product) Snapshot() core.Product {
	return core.Product{
		ID:          p.ID,
		ShopID:      p.ShopID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Category:    p.Category,
		PricePerDay: p.PricePerDay,
		Available:   p.Status == StatusApproved,
	}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day"`
}

// ProductFilter narrows product listings. Empty fields match everything.
type ProductFilter struct {
	Category string
	City     string
	ShopID   string
	Status   string
	Limit    int
	Offset   int
}

// ProductPage backs both the storefront grid and the admin product table.
type ProductPage struct {
	Items  []*Product `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Categories a product may be listed under.
var Categories = map[string]bool{
	"dress":     true,
	"suit":      true,
	"shirt":     true,
	"ethnic":    true,
	"outerwear": true,
	"shoes":     true,
	"accessory": true,
}

// Market is a city + category pair with at least one approved product.
type Market struct {
	City     string
	Category string
}
