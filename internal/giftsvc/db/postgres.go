package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

var ErrNoURL = errors.New("POSTGRES_URL is not set")

const schema = `
CREATE TABLE IF NOT EXISTS giftcards (
	pk           BIGSERIAL PRIMARY KEY,
	id           BIGINT NOT NULL,
	card_type    TEXT NOT NULL,
	card_name    TEXT NOT NULL,
	full_code    TEXT NOT NULL,
	balance      NUMERIC(12, 2) NOT NULL CHECK (balance >= 0),
	check_date   TIMESTAMPTZ NOT NULL,
	check_method TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS giftcards_check_date_idx ON giftcards (check_date DESC);
CREATE INDEX IF NOT EXISTS giftcards_id_idx ON giftcards (id);

CREATE TABLE IF NOT EXISTS admin (
	singleton     BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	email         TEXT NOT NULL,
	password      TEXT NOT NULL,
	registered_at TIMESTAMPTZ NOT NULL
);
`

// Connect initializes the connection pool and applies the schema
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrNoURL
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	// Try pinging to make sure it's valid
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	DB = pool

	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ClosePool is for graceful shutdown
func ClosePool() {
	if DB != nil {
		DB.Close()
	}
}
