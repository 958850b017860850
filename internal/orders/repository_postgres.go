package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order and its items in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	o.ID = uuid.New().String()
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, customer_id, total, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, o.ID, o.CustomerID, o.Total, o.PaymentStatus).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, position, product_id, shop_owner_id, name, price_per_day, days)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, o.ID, i, it.ProductID, it.ShopOwnerID, it.Name, it.PricePerDay, it.Days)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, customer_id, total::float8, payment_status, payment_reference, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Total, &o.PaymentStatus, &o.PaymentReference, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items = []Item{}
	return &o, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, map[string]*Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Order{}
	byID := map[string]*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, byID map[string]*Order) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT order_id, product_id, shop_owner_id, name, price_per_day::float8, days
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ShopOwnerID, &it.Name, &it.PricePerDay, &it.Days); err != nil {
			return err
		}
		o := byID[orderID]
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, id, from, to, reference string, at time.Time) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_status = $3,
		    payment_reference = CASE WHEN $4 = '' THEN payment_reference ELSE $4 END,
		    updated_at = $5
		WHERE id = $1 AND payment_status = $2
	`, id, from, to, reference, at)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStatusChanged
	}
	return r.Get(ctx, id)
}
