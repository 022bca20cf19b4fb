package repository

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock

import (
	"context"
	"time"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/infra/repository/converter"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	LockSeatDay(ctx context.Context, db sqlc.DBTX, arg sqlc.LockSeatDayParams) error
	CountOverlappingSeatReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingSeatReservationsParams) (int64, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	GetReservationByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationByIDForUpdateRow, error)
	CancelReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error)
	AttachOrderItems(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachOrderItemsParams) (int64, error)
}

// ReservationRepository writes through the transaction it was created with.
type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Claim serializes claims for one seat and day behind a transaction-scoped advisory lock,
// re-checks for an overlapping active reservation and inserts. The exclusion constraint on
// the table backs this up; either path reports KindConflict.
func (r *ReservationRepository) Claim(ctx context.Context, res *reservation.Reservation) error {
	params, err := converter.ReservationToInfra(res)
	if err != nil {
		return infra.WrapRepoErr("failed to convert reservation", err, infra.KindDBFailure)
	}

	if err := r.queries.LockSeatDay(ctx, r.db, sqlc.LockSeatDayParams{
		SeatID:          params.SeatID,
		ReservationDate: params.ReservationDate,
	}); err != nil {
		return infra.WrapRepoErr("failed to lock seat", err)
	}

	overlapping, err := r.queries.CountOverlappingSeatReservations(ctx, r.db, sqlc.CountOverlappingSeatReservationsParams{
		SeatID:          params.SeatID,
		ReservationDate: params.ReservationDate,
		StartTime:       params.StartTime,
		EndTime:         params.EndTime,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to check seat overlap", err)
	}
	if overlapping > 0 {
		return infra.WrapRepoErr("seat already reserved for an overlapping window", nil, infra.KindConflict)
	}

	if err := r.queries.CreateReservation(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	return nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationFromRow(sqlc.GetReservationByIDRow(row))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) MarkCancelled(ctx context.Context, res *reservation.Reservation) error {
	affected, err := r.queries.CancelReservation(ctx, r.db, sqlc.CancelReservationParams{
		ID:        res.ID(),
		UpdatedAt: pgconv.TimeToPgtype(updatedAtOrNow(res)),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("no active reservation to cancel", nil, infra.KindNotFound)
	}
	return nil
}

// SaveOrderItems only writes when no pre-order is stored yet; otherwise KindConflict.
func (r *ReservationRepository) SaveOrderItems(ctx context.Context, res *reservation.Reservation) error {
	payload, err := converter.OrderItemsToJSON(res.OrderItems())
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err, infra.KindDBFailure)
	}

	affected, err := r.queries.AttachOrderItems(ctx, r.db, sqlc.AttachOrderItemsParams{
		ID:         res.ID(),
		OrderItems: payload,
		UpdatedAt:  pgconv.TimeToPgtype(updatedAtOrNow(res)),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to attach order items", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("order items already attached or reservation inactive", nil, infra.KindConflict)
	}
	return nil
}

func updatedAtOrNow(res *reservation.Reservation) time.Time {
	if t := res.UpdatedAt(); !t.IsZero() {
		return t
	}
	return time.Now()
}
