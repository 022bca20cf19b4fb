package uow

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"restaurant-reservation/internal/infra/readstore"
	"restaurant-reservation/internal/infra/repository"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/errs"
	"restaurant-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// RetryPolicy bounds how often a transaction is replayed after a serialization failure
// or deadlock. Postgres has rolled back in both cases, so a replay cannot double-claim.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *sqlc.Queries
	retry RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) *PostgresUoW {
	return &PostgresUoW{pool: pool, q: q, retry: DefaultRetryPolicy}
}

// Within runs fn read committed. Claims are serialized per seat and day by an advisory
// lock taken inside fn, not by the isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, opts, fn)
		if err == nil {
			return nil
		}

		sqlState, retryable := retryableState(err)
		if !retryable {
			return err
		}
		if attempt == u.retry.MaxRetries {
			slog.Error("transaction gave up", "attempts", attempt+1, "sqlstate", sqlState, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := u.backoff(attempt)
		slog.Warn("retrying transaction", "attempt", attempt+1, "sqlstate", sqlState, "wait_ms", wait.Milliseconds())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{q: u.q, dbtx: u.pool}
}

// attempt is one begin/fn/commit round. Rollback after a successful commit is a no-op.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		// the caller's ctx may already be cancelled; rollback must still reach the server
		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if rbErr := pgxTx.Rollback(rbCtx); rbErr != nil && !errs.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, &pgTx{q: u.q, dbtx: pgxTx}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// backoff doubles per attempt with up to 20% jitter.
func (u *PostgresUoW) backoff(attempt int) time.Duration {
	wait := u.retry.BaseDelay << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int63n(jitter))
	}
	return wait
}

func retryableState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errs.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return pgErr.Code, true
	default:
		return pgErr.Code, false
	}
}

// pgTx hands out repositories bound to one open transaction.
type pgTx struct {
	q    *sqlc.Queries
	dbtx sqlc.DBTX
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	return repository.NewReservationRepository(t.q, t.dbtx)
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	return repository.NewIdempotencyRepository(t.q, t.dbtx)
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return repository.NewNotificationRepository(t.q, t.dbtx)
}

func (t *pgTx) Reads() shared.CommandReads {
	return &commandReads{q: t.q, dbtx: t.dbtx}
}

type commandReads struct {
	q    *sqlc.Queries
	dbtx sqlc.DBTX
}

func (r *commandReads) GroupOwner(ctx context.Context, groupID uuid.UUID) (string, error) {
	return readstore.NewReservationReadStore(r.q, r.dbtx).GroupOwner(ctx, groupID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key uuid.UUID, userID string) (*shared.IdempotencyRecord, error) {
	return readstore.NewIdempotencyReadStore(r.q, r.dbtx).Get(ctx, key, userID)
}
