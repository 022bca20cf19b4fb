package components

import (
	"restaurant-reservation/internal/usecase"
	"restaurant-reservation/internal/usecase/commands"
	"restaurant-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

// UseCaseModule provides queries before commands. Commands re-run the availability
// query before every claim.
var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		queries.NewSeatQueries,
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
		commands.NewReservationCommands,
		usecase.NewTokenValidator,
	),
)
