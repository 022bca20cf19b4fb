package components

import (
	"restaurant-reservation/internal/handler"
	"restaurant-reservation/internal/handler/api"
	"restaurant-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSeatHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(seat *api.SeatHandler, reservation *api.ReservationHandler) handler.Handlers {
	return handler.Handlers{Seat: seat, Reservation: reservation}
}

func NewMiddlewares(
	logger *middleware.Logger,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) handler.Middlewares {
	return handler.Middlewares{Logger: logger, Auth: auth, RateLimit: rateLimit}
}
