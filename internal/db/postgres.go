package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Options struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

func ConnectPostgres(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	zap.L().Info("connected to postgres",
		zap.Int32("max_conns", opts.MaxConns),
	)

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("%s: %w", stmt.name, err)
		}
	}

	zap.L().Info("schema initialized", zap.Int("statements", len(schema)))
	return nil
}

var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CUSTOMER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"password_reset_tokens", `
		CREATE TABLE IF NOT EXISTS password_reset_tokens (
			token UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL,
			used_at TIMESTAMP NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},

	// -------------------------------
	// SHOPS + PRODUCTS
	// -------------------------------
	{"shops", `
		CREATE TABLE IF NOT EXISTS shops (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			city VARCHAR(120) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			approved_at TIMESTAMP NULL,
			approved_by UUID NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			shop_id UUID NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(80) NOT NULL,
			size VARCHAR(20) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price_per_day NUMERIC(10,2) NOT NULL CHECK (price_per_day > 0),
			images TEXT[] NOT NULL DEFAULT '{}',
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"products_category_idx", `
		CREATE INDEX IF NOT EXISTS products_category_idx ON products (category, status)
	`},

	// -------------------------------
	// PRICE SNAPSHOTS
	// -------------------------------
	{"price_snapshots", `
		CREATE TABLE IF NOT EXISTS price_snapshots (
			id SERIAL PRIMARY KEY,
			city VARCHAR(120) NOT NULL,
			category VARCHAR(80) NOT NULL,
			avg_price_per_day NUMERIC(10,2) NOT NULL,
			median_price_per_day NUMERIC(10,2) NOT NULL,
			sample_size INT NOT NULL,
			created_at TIMESTAMP DEFAULT now(),
			updated_at TIMESTAMP DEFAULT now(),
			UNIQUE (city, category)
		)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES users(id),
			total NUMERIC(12,2) NOT NULL,
			payment_status VARCHAR(50) NOT NULL,
			payment_reference VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT now(),
			updated_at TIMESTAMP DEFAULT now()
		)
	`},
	{"order_items", `
		CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position INT NOT NULL,
			product_id UUID NOT NULL,
			shop_owner_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			price_per_day NUMERIC(10,2) NOT NULL,
			days INT NOT NULL,
			PRIMARY KEY (order_id, position)
		)
	`},

	// -------------------------------
	// FEEDBACK + REPORTS + NOTIFICATIONS
	// -------------------------------
	{"feedback", `
		CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at TIMESTAMP DEFAULT now()
		)
	`},
	{"reports", `
		CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			reporter_id UUID NOT NULL REFERENCES users(id),
			target_type VARCHAR(20) NOT NULL,
			target_id UUID NOT NULL,
			reason VARCHAR(255) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'OPEN',
			resolved_by UUID NULL,
			resolved_at TIMESTAMP NULL,
			created_at TIMESTAMP DEFAULT now()
		)
	`},
	{"notifications", `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			recipient VARCHAR(64) NOT NULL,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT now()
		)
	`},
	{"notifications_recipient_idx", `
		CREATE INDEX IF NOT EXISTS notifications_recipient_idx ON notifications (recipient, created_at DESC)
	`},
}
