package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"restaurant-reservation/internal/infra/db"
	"restaurant-reservation/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const dbStartupTimeout = 10 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(NewPool),
)

// NewPool fails startup when the database is unreachable. The reservation store has no
// degraded mode.
func NewPool(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(context.Background(), cfg.DB, dbStartupTimeout)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "host", cfg.DB.Host, "database", cfg.DB.DBName, "max_conns", pool.Config().MaxConns)

	lc.Append(fx.StopHook(func() {
		pool.Close()
		logger.Info("database pool closed")
	}))
	return pool, nil
}
