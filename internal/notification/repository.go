package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores notifications by recipient. A user's inbox may span
// several recipients (their own id plus ADMIN for admins).
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, recipients []string, limit int) ([]*Notification, error)
	UnreadCount(ctx context.Context, recipients []string) (int, error)
	MarkRead(ctx context.Context, id string, recipients []string) error
	MarkAllRead(ctx context.Context, recipients []string) (int, error)
}

// --------------------------------------------------
// Postgres
// --------------------------------------------------

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New().String()
	return r.db.QueryRow(ctx, `
		INSERT INTO notifications (id, recipient, title, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, n.ID, n.Recipient, n.Title, n.Body).Scan(&n.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context, recipients []string, limit int) ([]*Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, recipient, title, body, read, created_at
		FROM notifications
		WHERE recipient = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2
	`, recipients, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UnreadCount(ctx context.Context, recipients []string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM notifications
		WHERE recipient = ANY($1) AND NOT read
	`, recipients).Scan(&count)
	return count, err
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id string, recipients []string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND recipient = ANY($2)
	`, id, recipients)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, recipients []string) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE recipient = ANY($1) AND NOT read
	`, recipients)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// --------------------------------------------------
// In memory
// --------------------------------------------------

type InMemoryRepository struct {
	mu    sync.Mutex
	items []*Notification
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

func (r *InMemoryRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = uuid.New().String()
	n.CreatedAt = r.now()
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *InMemoryRepository) List(_ context.Context, recipients []string, limit int) ([]*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*Notification{}
	// newest first; items are appended in creation order
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if in(r.items[i].Recipient, recipients) {
			cp := *r.items[i]
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) UnreadCount(_ context.Context, recipients []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.items {
		if !n.Read && in(n.Recipient, recipients) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) MarkRead(_ context.Context, id string, recipients []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.items {
		if n.ID == id && in(n.Recipient, recipients) {
			n.Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) MarkAllRead(_ context.Context, recipients []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, n := range r.items {
		if !n.Read && in(n.Recipient, recipients) {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}

func in(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
