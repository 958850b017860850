package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	items []*Feedback
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, f *Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = uuid.New().String()
	f.CreatedAt = time.Now()
	cp := *f
	r.items = append(r.items, &cp)
	return nil
}

func (r *InMemoryRepository) List(_ context.Context, limit, offset int) ([]*Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*Feedback{}
	for i := len(r.items) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		cp := *r.items[i]
		out = append(out, &cp)
	}
	return out, nil
}
