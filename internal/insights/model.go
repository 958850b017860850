package insights

import "time"

// Snapshot is the aggregated rental price of one (city, category) market.
type Snapshot struct {
	ID                int       `json:"id"`
	City              string    `json:"city"`
	Category          string    `json:"category"`
	AvgPricePerDay    float64   `json:"avg_price_per_day"`
	MedianPricePerDay float64   `json:"median_price_per_day"`
	SampleSize        int       `json:"sample_size"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	UnderMarket   = "UNDER_MARKET"
	MarketAverage = "MARKET_AVERAGE"
	Premium       = "PREMIUM"
)

// Positioning compares one product against its market snapshot.
type Positioning struct {
	ProductID    string  `json:"product_id"`
	City         string  `json:"city"`
	Category     string  `json:"category"`
	PricePerDay  float64 `json:"price_per_day"`
	MarketAvg    float64 `json:"market_avg"`
	MarketMedian float64 `json:"market_median"`
	SampleSize   int     `json:"sample_size"`
	Position     string  `json:"positioning"`
}
