package bootstrap

import (
	"log/slog"

	"restaurant-reservation/internal/handler/middleware"
	"restaurant-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

// LoggerModule provides the request logger and the *slog.Logger it installs as default.
var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger { return middleware.NewLogger(cfg.Log) },
		func(l *middleware.Logger) *slog.Logger { return l.Slog() },
	),
)
