package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *Feedback) error {
	f.ID = uuid.New().String()
	return r.db.QueryRow(ctx, `
		INSERT INTO feedback (id, name, email, message, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, f.ID, f.Name, f.Email, f.Message, f.Rating).Scan(&f.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, message, rating, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.Rating, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
