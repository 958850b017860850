package selection

import "rentwear/internal/core"

// Entry is one selected product and the number of rental days for it.
type Entry struct {
	Product core.Product `json:"product"`
	Days    int          `json:"days"`
}

// Subtotal is days × price per day.
func (e Entry) Subtotal() float64 {
	return float64(e.Days) * e.Product.PricePerDay
}

// Store is an insertion-ordered set of entries keyed by product ID.
// Re-adding a product replaces its entry in place.
//
// A Store is not safe for concurrent use. Registry serializes access
// when stores are shared across request goroutines.
type Store struct {
	entries []Entry
	index   map[string]int
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Upsert adds product with the given rental days, or replaces the days and
// product snapshot of an existing entry without moving it.
func (s *Store) Upsert(product core.Product, days int) {
	if i, ok := s.index[product.ID]; ok {
		s.entries[i] = Entry{Product: product, Days: days}
		return
	}
	s.index[product.ID] = len(s.entries)
	s.entries = append(s.entries, Entry{Product: product, Days: days})
}

// Remove deletes the entry for productID. Absent ids are ignored.
func (s *Store) Remove(productID string) {
	i, ok := s.index[productID]
	if !ok {
		return
	}

	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, productID)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].Product.ID] = j
	}
}

func (s *Store) Clear() {
	s.entries = nil
	clear(s.index)
}

func (s *Store) Contains(productID string) bool {
	_, ok := s.index[productID]
	return ok
}

// Count is the number of distinct products, not the sum of days.
func (s *Store) Count() int {
	return len(s.entries)
}

// AggregateValue sums days × price per day over all entries.
func (s *Store) AggregateValue() float64 {
	var total float64
	for _, e := range s.entries {
		total += e.Subtotal()
	}
	return total
}

func (s *Store) Get(productID string) (Entry, bool) {
	i, ok := s.index[productID]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Items returns a copy of the entries in order.
func (s *Store) Items() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
