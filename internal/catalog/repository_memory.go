package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local runs without Postgres.
type InMemoryRepository struct {
	mu       sync.RWMutex
	shops    map[string]*Shop
	products map[string]*Product
	now      func() time.Time
	last     time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		shops:    make(map[string]*Shop),
		products: make(map[string]*Product),
		now:      time.Now,
	}
}

func (r *InMemoryRepository) CreateShop(_ context.Context, shop *Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop.ID = uuid.New().String()
	shop.CreatedAt = r.tick()
	cp := *shop
	r.shops[shop.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetShop(_ context.Context, shopID string) (*Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.shops[shopID]
	if !ok {
		return nil, ErrShopNotFound
	}
	cp := *shop
	return &cp, nil
}

func (r *InMemoryRepository) ListShopsByOwner(_ context.Context, ownerID string) ([]*Shop, error) {
	return r.listShops(func(s *Shop) bool { return s.OwnerID == ownerID }), nil
}

func (r *InMemoryRepository) ListShopsByStatus(_ context.Context, status string) ([]*Shop, error) {
	return r.listShops(func(s *Shop) bool { return s.Status == status }), nil
}

func (r *InMemoryRepository) listShops(match func(*Shop) bool) []*Shop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Shop
	for _, s := range r.shops {
		if match(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *InMemoryRepository) ApproveShop(_ context.Context, shopID, _ string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop, ok := r.shops[shopID]
	if !ok {
		return ErrShopNotFound
	}
	shop.Status = StatusApproved
	shop.ApprovedAt = &at

	for _, p := range r.products {
		if p.ShopID == shopID {
			p.Status = StatusApproved
		}
	}
	return nil
}

func (r *InMemoryRepository) CreateProduct(_ context.Context, product *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shop, ok := r.shops[product.ShopID]
	if !ok {
		return ErrShopNotFound
	}

	product.ID = uuid.New().String()
	product.CreatedAt = r.tick()
	product.OwnerID = shop.OwnerID
	product.City = shop.City
	if product.Images == nil {
		product.Images = []string{}
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetProduct(_ context.Context, productID string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	cp.Images = append([]string{}, p.Images...)
	return &cp, nil
}

func (r *InMemoryRepository) ListProducts(_ context.Context, f ProductFilter) ([]*Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.City != "" && p.City != f.City {
			continue
		}
		if f.ShopID != "" && p.ShopID != f.ShopID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if f.Offset >= total {
		return []*Product{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func (r *InMemoryRepository) AddProductImages(_ context.Context, productID string, urls []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	p.Images = append(p.Images, urls...)
	return nil
}

func (r *InMemoryRepository) ApprovedPrices(_ context.Context, city, category string) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prices []float64
	for _, p := range r.products {
		if p.Status == StatusApproved && p.City == city && p.Category == category {
			prices = append(prices, p.PricePerDay)
		}
	}
	return prices, nil
}

func (r *InMemoryRepository) ApprovedMarkets(_ context.Context) ([]Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[Market]bool{}
	var out []Market
	for _, p := range r.products {
		m := Market{City: p.City, Category: p.Category}
		if p.Status == StatusApproved && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

// tick returns a strictly increasing timestamp so listings keep a stable
// newest-first order even when entries are created in the same instant.
func (r *InMemoryRepository) tick() time.Time {
	t := r.now()
	if !t.After(r.last) {
		t = r.last.Add(time.Nanosecond)
	}
	r.last = t
	return t
}
