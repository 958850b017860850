package report

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	List(ctx context.Context, status string) ([]*Report, error)
	Resolve(ctx context.Context, id, adminID string, at time.Time) (*Report, error)
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

const reportColumns = `id, reporter_id, target_type, target_id, reason, details, status, resolved_by, resolved_at, created_at`

func scanReport(row pgx.Row) (*Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.ReporterID, &r.TargetType, &r.TargetID, &r.Reason, &r.Details,
		&r.Status, &r.ResolvedBy, &r.ResolvedAt, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *PostgresRepository) Create(ctx context.Context, r *Report) error {
	r.ID = uuid.New().String()
	r.Status = StatusOpen
	return p.db.QueryRow(ctx, `
		INSERT INTO reports (id, reporter_id, target_type, target_id, reason, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, r.ID, r.ReporterID, r.TargetType, r.TargetID, r.Reason, r.Details, r.Status).Scan(&r.CreatedAt)
}

func (p *PostgresRepository) List(ctx context.Context, status string) ([]*Report, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *PostgresRepository) Resolve(ctx context.Context, id, adminID string, at time.Time) (*Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	r, err := scanReport(p.db.QueryRow(ctx, `
		UPDATE reports
		SET status = $2, resolved_by = $3, resolved_at = $4
		WHERE id = $1 AND status = $5
		RETURNING `+reportColumns,
		id, StatusResolved, adminID, at, StatusOpen,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reports WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyResolved
		}
		return nil, ErrNotFound
	}
	return r, err
}

// --------------------------------------------------
// In memory
// --------------------------------------------------

type InMemoryRepository struct {
	mu      sync.Mutex
	reports []*Report
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (m *InMemoryRepository) Create(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.New().String()
	r.Status = StatusOpen
	r.CreatedAt = time.Now()
	cp := *r
	m.reports = append(m.reports, &cp)
	return nil
}

func (m *InMemoryRepository) List(_ context.Context, status string) ([]*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*Report{}
	for i := len(m.reports) - 1; i >= 0; i-- {
		if status == "" || m.reports[i].Status == status {
			cp := *m.reports[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *InMemoryRepository) Resolve(_ context.Context, id, adminID string, at time.Time) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reports {
		if r.ID != id {
			continue
		}
		if r.Status == StatusResolved {
			return nil, ErrAlreadyResolved
		}
		r.Status = StatusResolved
		r.ResolvedBy = &adminID
		r.ResolvedAt = &at
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}
