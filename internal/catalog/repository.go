package catalog

import (
	"context"
	"time"
)

type Repository interface {
	// shops
	CreateShop(ctx context.Context, shop *Shop) error
	GetShop(ctx context.Context, shopID string) (*Shop, error)
	ListShopsByOwner(ctx context.Context, ownerID string) ([]*Shop, error)
	ListShopsByStatus(ctx context.Context, status string) ([]*Shop, error)
	// ApproveShop approves the shop and every product listed under it.
	ApproveShop(ctx context.Context, shopID, adminID string, at time.Time) error

	// products
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, int, error)
	AddProductImages(ctx context.Context, productID string, urls []string) error

	// pricing inputs
	ApprovedPrices(ctx context.Context, city, category string) ([]float64, error)
	ApprovedMarkets(ctx context.Context) ([]Market, error)
}
