package selection

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type session struct {
	store   *Store
	touched time.Time
}

// Registry owns one Store per session and serializes all access to them.
// Stores idle for longer than ttl are dropped by Sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// With runs fn against the session's store, creating an empty one on first
// use. fn must not retain the store after it returns.
func (r *Registry) With(sessionID string, fn func(*Store)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		sess = &session{store: NewStore()}
		r.sessions[sessionID] = sess
	}
	sess.touched = r.now()
	fn(sess.store)
}

// Read runs fn against an existing session's store without creating it or
// refreshing its idle time. It reports whether the session exists.
func (r *Registry) Read(sessionID string, fn func(*Store)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return false
	}
	fn(sess.store)
	return true
}

// Discard drops the session's store.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes stores not touched within the ttl and returns how many.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, sess := range r.sessions {
		if sess.touched.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// interval disables sweeping.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		zap.L().Warn("cart sweeper disabled", zap.Duration("interval", interval))
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zap.L().Info("cart sweeper started", zap.Duration("interval", interval), zap.Duration("ttl", r.ttl))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				zap.L().Info("expired idle carts", zap.Int("count", n))
			}
		}
	}
}
