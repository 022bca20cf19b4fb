package components

import (
	"restaurant-reservation/internal/infra/readstore"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/infra/uow"
	"restaurant-reservation/internal/usecase/queries"
	"restaurant-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule exposes the pool-backed read side directly. The write side only
// exists inside a unit of work, so no repository is provided here.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		sqlc.New,
		func(pool *pgxpool.Pool) sqlc.DBTX { return pool },
		func(q *sqlc.Queries) readstore.ReservationViewQueries { return q },
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.BookedSlotReadStore)),
		),
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
