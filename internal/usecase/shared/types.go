package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              string
	Endpoint            string
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Outbox job kinds and topics.
const (
	JobKindReservationEvent = "reservation_event"

	TopicReservationConfirmed  = "reservation.confirmed"
	TopicReservationCancelled  = "reservation.cancelled"
	TopicReservationPreordered = "reservation.preordered"
)
