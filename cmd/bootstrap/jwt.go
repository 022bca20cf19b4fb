package bootstrap

import (
	"restaurant-reservation/internal/pkg/config"
	"restaurant-reservation/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Leeway)
}
