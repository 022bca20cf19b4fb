package queries

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

import (
	"context"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/pkg/errs"
)

// AvailabilitySearch is an unvalidated availability lookup as it arrives from a client.
type AvailabilitySearch struct {
	Date      reservation.Date
	StartTime reservation.ClockTime
	EndTime   reservation.ClockTime
	PartySize int
	Mode      reservation.Mode
	// ExcludeSeatIDs are seats the client has already picked for other members of its party.
	ExcludeSeatIDs []string
}

type AvailabilityQueries interface {
	// ComputeAvailable lists the seats that can host req right now, leaving out alreadySelected.
	ComputeAvailable(ctx context.Context, req reservation.Request, alreadySelected []string) ([]string, error)
	// Search validates in against the house rules and then runs ComputeAvailable.
	Search(ctx context.Context, in AvailabilitySearch) ([]string, error)
}

type BookedSlotReadStore interface {
	FindOverlapping(ctx context.Context, w reservation.Window) ([]reservation.BookedSlot, error)
}

type availabilityQueriesImpl struct {
	store   BookedSlotReadStore
	catalog *seat.Catalog
	factory *reservation.Factory
}

func NewAvailabilityQueries(store BookedSlotReadStore, catalog *seat.Catalog, factory *reservation.Factory) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, catalog: catalog, factory: factory}
}

func (q *availabilityQueriesImpl) ComputeAvailable(ctx context.Context, req reservation.Request, alreadySelected []string) ([]string, error) {
	booked, err := q.store.FindOverlapping(ctx, req.Window())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}

	taken := reservation.TakenSeats(req.Window(), booked, alreadySelected)
	return reservation.FreeSeats(q.catalog, req, taken), nil
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, in AvailabilitySearch) ([]string, error) {
	req, err := q.factory.NewRequest(in.Date, in.StartTime, in.EndTime, in.PartySize, in.Mode)
	if err != nil {
		return nil, err
	}
	return q.ComputeAvailable(ctx, req, in.ExcludeSeatIDs)
}
