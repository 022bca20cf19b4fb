package queries

//go:generate mockgen -source=seat.go -destination=../../../tests/mock/queries/seat.go -package=queriesmock

import (
	"context"

	"restaurant-reservation/internal/domain/seat"
)

type SeatQueries interface {
	List(ctx context.Context) []SeatView
}

type seatQueriesImpl struct {
	catalog *seat.Catalog
}

func NewSeatQueries(catalog *seat.Catalog) SeatQueries {
	return &seatQueriesImpl{catalog: catalog}
}

func (q *seatQueriesImpl) List(_ context.Context) []SeatView {
	seats := q.catalog.All()
	views := make([]SeatView, len(seats))
	for i, s := range seats {
		views[i] = SeatView{ID: s.ID, Capacity: s.Capacity, Capability: s.Capability.String()}
	}
	return views
}
