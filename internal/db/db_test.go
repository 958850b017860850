package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestConnectPostgres(t *testing.T) {
	t.Run("missing DATABASE_URL returns error", func(t *testing.T) {
		_, err := ConnectPostgres(context.Background(), Options{})
		if err == nil {
			t.Fatal("expected error for empty DSN")
		}
	})

	t.Run("malformed DATABASE_URL returns error", func(t *testing.T) {
		_, err := ConnectPostgres(context.Background(), Options{DSN: "postgres://%zz"})
		if err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := ConnectPostgres(ctx, Options{DSN: dsn, MaxConns: 2, MinConns: 1})
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		defer pool.Close()
	})
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range schema {
		if !strings.Contains(stmt.sql, "IF NOT EXISTS") {
			t.Errorf("statement %q is not idempotent", stmt.name)
		}
	}
}
