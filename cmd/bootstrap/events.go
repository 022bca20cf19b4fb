package bootstrap

import (
	"context"
	"log/slog"

	"restaurant-reservation/internal/infra/messaging"
	"restaurant-reservation/internal/infra/outbox"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewPublisher,
		fx.Annotate(
			outbox.NewPostgresStore,
			fx.As(new(outbox.Store)),
		),
		NewRelay,
	),
	fx.Invoke(func(*outbox.Relay) {}),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (messaging.Publisher, error) {
	pub, err := messaging.NewPublisher(cfg.Events, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

// NewRelay is stopped before the publisher closes since fx runs OnStop hooks in reverse.
func NewRelay(lc fx.Lifecycle, store outbox.Store, pub messaging.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	relay := outbox.NewRelay(store, pub, clk, cfg.Events, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
	return relay
}
