package reservation

import (
	"strings"

	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock  clock.Clock
	Policy Policy
}

func NewFactory(clock clock.Clock, policy Policy) *Factory {
	return &Factory{
		Clock:  clock,
		Policy: policy,
	}
}

// NewRequest validates a request against the house rules at the current instant.
func (f *Factory) NewRequest(date Date, start, end ClockTime, partySize int, mode Mode) (Request, error) {
	return NewRequest(f.Policy, f.Clock.Now(), date, start, end, partySize, mode)
}

// CreateReservation builds a new active reservation for seat s. A nil groupID starts a
// new group with this reservation as its primary member.
func (f *Factory) CreateReservation(req Request, userID string, s seat.Seat, groupID *uuid.UUID) (*Reservation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if !Suits(s, req) {
		return nil, invalid(ErrSeatIncompatible, "%s holds %d (%s), party of %d wants %s",
			s.ID, s.Capacity, s.Capability, req.PartySize(), req.Mode())
	}

	id := uuid.New()
	group := id
	primary := true
	if groupID != nil {
		group = *groupID
		primary = false
	}

	now := f.Clock.Now()
	return &Reservation{
		id:        id,
		userID:    userID,
		seatID:    s.ID,
		window:    req.Window(),
		partySize: req.PartySize(),
		mode:      req.Mode(),
		groupID:   group,
		isPrimary: primary,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}
