package bootstrap

import (
	"restaurant-reservation/cmd/bootstrap/components"
	"restaurant-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

// Module is the whole service. Events come last so the relay starts after the store
// it drains and stops before it.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	DomainModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	EventsModule,
)
