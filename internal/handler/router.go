package handler

import (
	"net/http"

	"restaurant-reservation/internal/handler/api"
	"restaurant-reservation/internal/handler/middleware"
	"restaurant-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Seat        *api.SeatHandler
	Reservation *api.ReservationHandler
}

type Middlewares struct {
	Logger    *middleware.Logger
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

// endpoint is one route. limited routes draw from the caller's token bucket first.
type endpoint struct {
	method  string
	path    string
	handler gin.HandlerFunc
	limited bool
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	// recovery is outermost so panics in any later middleware are caught
	engine.Use(
		middleware.CustomRecovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		mw.Logger.LoggingMiddleware(),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", healthCheck)
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limit := mw.RateLimit.Limit()
	apiGroup := engine.Group("/api")

	register(apiGroup, limit, []endpoint{
		{http.MethodGet, "/seats", h.Seat.List, false},
		{http.MethodGet, "/availability", h.Seat.Availability, true},
	})

	reservations := apiGroup.Group("/reservations", mw.Auth.RequireAuth())
	register(reservations, limit, []endpoint{
		{http.MethodPost, "", h.Reservation.Create, true},
		{http.MethodGet, "", h.Reservation.List, false},
		{http.MethodGet, "/:id", h.Reservation.Get, false},
		{http.MethodPost, "/:id/cancel", h.Reservation.Cancel, true},
		{http.MethodPost, "/:id/orderItems", h.Reservation.AttachOrderItems, true},
	})
}

func register(g *gin.RouterGroup, limit gin.HandlerFunc, eps []endpoint) {
	for _, ep := range eps {
		if ep.limited {
			g.Handle(ep.method, ep.path, limit, ep.handler)
			continue
		}
		g.Handle(ep.method, ep.path, ep.handler)
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
