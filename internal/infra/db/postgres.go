package db

import (
	"context"
	"time"

	"restaurant-reservation/internal/pkg/config"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the pool without dialing. Call Ping before serving traffic.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, errs.Wrap(err, "parse database config")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(err, "open database pool")
	}
	return pool, nil
}

// Connect opens a pool and checks one round trip within timeout.
func Connect(ctx context.Context, cfg config.DBConfig, timeout time.Duration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Wrapf(err, "ping database %s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)
	}
	return pool, nil
}
