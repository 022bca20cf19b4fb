package middleware

import (
	"log/slog"
	"slices"

	"restaurant-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exposes the idempotency and rate-limit headers to browsers.
// An origin list of "*" allows any origin, and credentials are then switched off.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    append(slices.Clone(cfg.ExposeHeaders), "X-RateLimit-Limit", "X-RateLimit-Remaining"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("CORS configured",
		"allow_all_origins", corsCfg.AllowAllOrigins,
		"origins", corsCfg.AllowOrigins,
		"credentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}
