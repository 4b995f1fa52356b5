package orderlog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

const createOrders = `
	CREATE TABLE IF NOT EXISTS orders (
		id         BIGINT      NOT NULL,
		user_id    BIGINT      NOT NULL,
		product_id BIGINT      NOT NULL,
		quantity   INTEGER     NOT NULL,
		placed_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// Postgres stores orders in the orders table. Ids are best-effort, so the
// table carries no unique constraint on id.
type Postgres struct{ db *pgxpool.Pool }

func NewPostgres(ctx context.Context, db *pgxpool.Pool) (*Postgres, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := db.Exec(ctx, createOrders); err != nil {
		db.Close()
		return nil, fmt.Errorf("create orders table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Append(ctx context.Context, r Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.db.Exec(ctx, `
		INSERT INTO orders (id, user_id, product_id, quantity, placed_at)
		VALUES ($1,$2,$3,$4,$5)
	`, r.ID, r.UserID, r.ProductID, r.Quantity, r.PlacedAt)
	return err
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
