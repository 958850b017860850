package insights

import (
	"context"
	"errors"
	"sort"
	"time"

	"rentwear/internal/catalog"

	"go.uber.org/zap"
)

// MinSamples is how many approved products a market needs before a
// snapshot is published.
const MinSamples = 3

var (
	ErrNoMarketData  = errors.New("no market data available")
	ErrMissingMarket = errors.New("city and category required")
)

type PriceSource interface {
	ApprovedPrices(ctx context.Context, city, category string) ([]float64, error)
	ApprovedMarkets(ctx context.Context) ([]catalog.Market, error)
}

type ProductSource interface {
	GetOwnedProduct(ctx context.Context, productID, userID string) (*catalog.Product, error)
}

type Service struct {
	repo     Repository
	prices   PriceSource
	products ProductSource
}

func NewService(repo Repository, prices PriceSource, products ProductSource) *Service {
	return &Service{repo: repo, prices: prices, products: products}
}

// RecomputeSnapshot refreshes the snapshot for a city + category. Markets
// with fewer than MinSamples products are skipped and report false.
func (s *Service) RecomputeSnapshot(ctx context.Context, city, category string) (bool, error) {
	if city == "" || category == "" {
		return false, ErrMissingMarket
	}

	values, err := s.prices.ApprovedPrices(ctx, city, category)
	if err != nil {
		return false, err
	}

	// 🚨 Require minimum samples
	if len(values) < MinSamples {
		zap.S().Infof("[INSIGHTS] Skipping %s / %s (samples=%d)", city, category, len(values))
		return false, nil
	}

	avg, median := summarize(values)

	zap.S().Infof("[INSIGHTS] %s / %s → avg=%.2f median=%.2f samples=%d",
		city, category, avg, median, len(values))

	return true, s.repo.UpsertSnapshot(ctx, Snapshot{
		City:              city,
		Category:          category,
		AvgPricePerDay:    avg,
		MedianPricePerDay: median,
		SampleSize:        len(values),
	})
}

// RecomputeAll refreshes every market that has approved products and
// returns how many snapshots were written. A failing market is logged and
// skipped.
func (s *Service) RecomputeAll(ctx context.Context) (int, error) {
	markets, err := s.prices.ApprovedMarkets(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, m := range markets {
		ok, err := s.RecomputeSnapshot(ctx, m.City, m.Category)
		if err != nil {
			zap.L().Warn("insights recompute failed",
				zap.String("city", m.City),
				zap.String("category", m.Category),
				zap.Error(err),
			)
			continue
		}
		if ok {
			written++
		}
	}
	return written, nil
}

// RunRefresher recomputes all markets every interval until ctx is done.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zap.L().Info("insights refresher started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.RecomputeAll(ctx)
			if err != nil {
				zap.L().Error("insights refresh failed", zap.Error(err))
				continue
			}
			zap.L().Debug("insights refreshed", zap.Int("snapshots", n))
		}
	}
}

// Read-only fetch for API
func (s *Service) GetSnapshot(ctx context.Context, city, category string) (*Snapshot, error) {
	if city == "" || category == "" {
		return nil, ErrMissingMarket
	}
	return s.repo.GetSnapshot(ctx, city, category)
}

// ProductPositioning compares an owner's product with its market.
func (s *Service) ProductPositioning(ctx context.Context, productID, userID string) (*Positioning, error) {
	// 🔒 Ownership enforced by the product source
	p, err := s.products.GetOwnedProduct(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.repo.GetSnapshot(ctx, p.City, p.Category)
	if err != nil {
		return nil, err
	}

	return &Positioning{
		ProductID:    p.ID,
		City:         p.City,
		Category:     p.Category,
		PricePerDay:  p.PricePerDay,
		MarketAvg:    snap.AvgPricePerDay,
		MarketMedian: snap.MedianPricePerDay,
		SampleSize:   snap.SampleSize,
		Position:     determinePosition(p.PricePerDay, snap.MedianPricePerDay),
	}, nil
}

func summarize(values []float64) (avg, median float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	avg = sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return avg, median
}

// --------------------------------------------------
// Positioning logic
// --------------------------------------------------
func determinePosition(price, median float64) string {
	switch {
	case price < median*0.9:
		return UnderMarket
	case price > median*1.1:
		return Premium
	default:
		return MarketAverage
	}
}
