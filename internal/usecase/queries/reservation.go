package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"

	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor string, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the owner check; used for idempotent replays.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, actor, userID string) ([]*ReservationView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor string, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actor {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	return view, nil
}

// ListByUser returns every reservation of userID, cancelled ones included,
// ordered by date and start time. Callers may only list their own reservations.
func (q *reservationQueriesImpl) ListByUser(ctx context.Context, actor, userID string) ([]*ReservationView, error) {
	if actor != userID {
		return nil, errs.ErrForbidden
	}

	views, err := q.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	if views == nil {
		views = []*ReservationView{}
	}
	return views, nil
}
