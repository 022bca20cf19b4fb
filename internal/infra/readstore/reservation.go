package readstore

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation.go -package=readstoremock

import (
	"context"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/infra/repository/converter"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/pgconv"
	"restaurant-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationByIDRow, error)
	ListReservationsByUser(ctx context.Context, db sqlc.DBTX, userID string) ([]sqlc.ListReservationsByUserRow, error)
	ListOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOverlappingReservationsParams) ([]sqlc.ListOverlappingReservationsRow, error)
	GetGroupOwner(ctx context.Context, db sqlc.DBTX, groupID uuid.UUID) (string, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

// FindOverlapping returns the active bookings on w's date that overlap w.
func (r *ReservationReadStore) FindOverlapping(ctx context.Context, w reservation.Window) ([]reservation.BookedSlot, error) {
	start, end, date := converter.WindowToPgtype(w)
	rows, err := r.queries.ListOverlappingReservations(ctx, r.db, sqlc.ListOverlappingReservationsParams{
		ReservationDate: date,
		StartTime:       start,
		EndTime:         end,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}

	slots := make([]reservation.BookedSlot, 0, len(rows))
	for _, row := range rows {
		booked, err := converter.WindowFromPgtype(row.ReservationDate, row.StartTime, row.EndTime)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation window", err, infra.KindDBFailure)
		}
		slots = append(slots, reservation.BookedSlot{SeatID: row.SeatID, Window: booked})
	}
	return slots, nil
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row)
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID string) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}

	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		view, err := rowToReservationView(sqlc.GetReservationByIDRow(row))
		if err != nil {
			return nil, err
		}
		result[i] = view
	}
	return result, nil
}

func (r *ReservationReadStore) GroupOwner(ctx context.Context, groupID uuid.UUID) (string, error) {
	owner, err := r.queries.GetGroupOwner(ctx, r.db, groupID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("reservation group not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to find reservation group", err)
	}
	return owner, nil
}

func rowToReservationView(row sqlc.GetReservationByIDRow) (*queries.ReservationView, error) {
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return queries.NewReservationView(res), nil
}
