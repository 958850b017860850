package insights

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	UpsertSnapshot(ctx context.Context, s Snapshot) error
	GetSnapshot(ctx context.Context, city, category string) (*Snapshot, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert or update snapshot for (city, category)
func (r *PostgresRepository) UpsertSnapshot(ctx context.Context, s Snapshot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO price_snapshots (
			city,
			category,
			avg_price_per_day,
			median_price_per_day,
			sample_size
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (city, category)
		DO UPDATE SET
			avg_price_per_day = EXCLUDED.avg_price_per_day,
			median_price_per_day = EXCLUDED.median_price_per_day,
			sample_size = EXCLUDED.sample_size,
			updated_at = now()
	`,
		s.City,
		s.Category,
		s.AvgPricePerDay,
		s.MedianPricePerDay,
		s.SampleSize,
	)
	return err
}

func (r *PostgresRepository) GetSnapshot(ctx context.Context, city, category string) (*Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			city,
			category,
			avg_price_per_day::float8,
			median_price_per_day::float8,
			sample_size,
			created_at,
			updated_at
		FROM price_snapshots
		WHERE city = $1 AND category = $2
	`, city, category).Scan(
		&s.ID,
		&s.City,
		&s.Category,
		&s.AvgPricePerDay,
		&s.MedianPricePerDay,
		&s.SampleSize,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoMarketData
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type marketKey struct{ city, category string }

type InMemoryRepository struct {
	mu        sync.Mutex
	snapshots map[marketKey]Snapshot
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{snapshots: make(map[marketKey]Snapshot), nextID: 1}
}

func (r *InMemoryRepository) UpsertSnapshot(_ context.Context, s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := marketKey{s.City, s.Category}
	now := time.Now()
	if existing, ok := r.snapshots[key]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = r.nextID
		r.nextID++
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.snapshots[key] = s
	return nil
}

func (r *InMemoryRepository) GetSnapshot(_ context.Context, city, category string) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.snapshots[marketKey{city, category}]
	if !ok {
		return nil, ErrNoMarketData
	}
	return &s, nil
}
