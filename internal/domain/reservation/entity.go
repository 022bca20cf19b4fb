package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyUserID               = errors.New("user id cannot be empty")
	ErrSeatIncompatible          = errors.New("seat cannot host this party")
	ErrReservationCancelled      = errors.New("reservation is cancelled")
	ErrOrderItemsAlreadyAttached = errors.New("order items already attached")
)

type Reservation struct {
	id         uuid.UUID
	userID     string
	seatID     string
	window     Window
	partySize  int
	mode       Mode
	groupID    uuid.UUID
	isPrimary  bool
	status     Status
	orderItems []OrderItem
	createdAt  time.Time
	updatedAt  time.Time
}

func ReconstructReservation(
	id uuid.UUID,
	userID, seatID string,
	window Window,
	partySize int,
	mode Mode,
	groupID uuid.UUID,
	isPrimary bool,
	status Status,
	orderItems []OrderItem,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		userID:     userID,
		seatID:     seatID,
		window:     window,
		partySize:  partySize,
		mode:       mode,
		groupID:    groupID,
		isPrimary:  isPrimary,
		status:     status,
		orderItems: orderItems,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) IsActive() bool    { return r.status == StatusActive }
func (r *Reservation) IsCancelled() bool { return r.status == StatusCancelled }

func (r *Reservation) OwnedBy(userID string) bool {
	return strings.TrimSpace(userID) != "" && r.userID == userID
}

// Cancel moves an active reservation to cancelled. Cancelling twice is a no-op;
// changed tells the caller whether anything needs persisting.
func (r *Reservation) Cancel(now time.Time) (changed bool) {
	if r.status == StatusCancelled {
		return false
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return true
}

// AttachOrderItems records the pre-order. It may happen once; there is no append.
func (r *Reservation) AttachOrderItems(items []OrderItem, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrReservationCancelled
	}
	if len(r.orderItems) > 0 {
		return ErrOrderItemsAlreadyAttached
	}
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	r.orderItems = append([]OrderItem(nil), items...)
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() string          { return r.userID }
func (r *Reservation) SeatID() string          { return r.seatID }
func (r *Reservation) Window() Window          { return r.window }
func (r *Reservation) PartySize() int          { return r.partySize }
func (r *Reservation) Mode() Mode              { return r.mode }
func (r *Reservation) GroupID() uuid.UUID      { return r.groupID }
func (r *Reservation) IsPrimary() bool         { return r.isPrimary }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) OrderItems() []OrderItem { return append([]OrderItem(nil), r.orderItems...) }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
