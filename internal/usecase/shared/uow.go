package shared

import (
	"context"
	"time"

	"restaurant-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to one open transaction.
type Tx interface {
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	GroupOwner(ctx context.Context, groupID uuid.UUID) (string, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID, userID string) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	// Claim inserts res only if its seat has no active reservation overlapping its window.
	Claim(ctx context.Context, res *reservation.Reservation) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	MarkCancelled(ctx context.Context, res *reservation.Reservation) error
	SaveOrderItems(ctx context.Context, res *reservation.Reservation) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, userID string, reservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
