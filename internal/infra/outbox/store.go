package outbox

import (
	"context"
	"time"

	"restaurant-reservation/internal/infra/repository"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobStore interface {
	ClaimQueued(ctx context.Context, limit int32) ([]repository.NotificationJob, error)
	MarkSent(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string, retryAt time.Time, maxAttempts int32) error
}

type Store interface {
	// WithJobs runs fn in one transaction; claimed jobs stay locked until it returns.
	WithJobs(ctx context.Context, fn func(ctx context.Context, jobs JobStore) error) error
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type PostgresStore struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresStore(pool *pgxpool.Pool, q *sqlc.Queries) *PostgresStore {
	return &PostgresStore{pool: pool, q: q}
}

func (s *PostgresStore) WithJobs(ctx context.Context, fn func(ctx context.Context, jobs JobStore) error) error {
	_, err := shared.RunInTx(ctx, s.pool, func(tx sqlc.DBTX) (struct{}, error) {
		return struct{}{}, fn(ctx, repository.NewNotificationRepository(s.q, tx))
	})
	return err
}

func (s *PostgresStore) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	return repository.NewIdempotencyRepository(s.q, s.pool).DeleteExpired(ctx)
}
