package shared

import (
	"context"

	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrHousekeepingTx = errs.New("housekeeping transaction failed")

// RunInTx runs fn in one transaction without retries. Background workers use it for
// short batches that are safe to redo on their next tick.
func RunInTx[T any](ctx context.Context, db *pgxpool.Pool, fn func(tx sqlc.DBTX) (T, error)) (T, error) {
	var result T
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, errs.Mark(err, ErrHousekeepingTx)
	}
	return result, nil
}
