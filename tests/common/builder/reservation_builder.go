//go:build unit || e2e

package builder

import (
	"time"

	"restaurant-reservation/internal/domain/reservation"
	reqdto "restaurant-reservation/internal/handler/dto/request"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/pgconv"
	"restaurant-reservation/internal/usecase/commands"
	"restaurant-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	UserID     string
	SeatID     string
	Date       reservation.Date
	Start      reservation.ClockTime
	End        reservation.ClockTime
	PartySize  int
	Mode       reservation.Mode
	GroupID    uuid.UUID
	IsPrimary  bool
	Status     reservation.Status
	OrderItems []reservation.OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReservationBuilder defaults to a dinner for two at 2table, far enough ahead to pass every house rule.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.New()
	return &ReservationBuilder{
		ID:        id,
		UserID:    "user-1",
		SeatID:    "2table",
		Date:      reservation.DateOf(now).AddDays(7),
		Start:     reservation.MustClockTime(18, 0),
		End:       reservation.MustClockTime(20, 0),
		PartySize: 2,
		Mode:      reservation.ModeDineAndEat,
		GroupID:   id,
		IsPrimary: true,
		Status:    reservation.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) Window() reservation.Window {
	return reservation.Window{Date: r.Date, Start: r.Start, End: r.End}
}

func (r *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID, r.UserID, r.SeatID, r.Window(), r.PartySize, r.Mode,
		r.GroupID, r.IsPrimary, r.Status, r.OrderItems, r.CreatedAt, r.UpdatedAt,
	)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return queries.NewReservationView(r.BuildDomain())
}

func (r *ReservationBuilder) BuildRow() sqlc.GetReservationByIDRow {
	return sqlc.GetReservationByIDRow{
		ID:              r.ID,
		UserID:          r.UserID,
		SeatID:          r.SeatID,
		ReservationDate: pgconv.DateToPgtype(r.Date.Time()),
		StartTime:       pgconv.TimeOfDayToPgtype(r.Start.SinceMidnight()),
		EndTime:         pgconv.TimeOfDayToPgtype(r.End.SinceMidnight()),
		PartySize:       int32(r.PartySize),
		Mode:            r.Mode.String(),
		GroupID:         r.GroupID,
		IsPrimary:       r.IsPrimary,
		Status:          r.Status.String(),
		CreatedAt:       pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
		UpdatedAt:       pgtype.Timestamptz{Time: r.UpdatedAt, Valid: true},
	}
}

func (r *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		SeatID:    r.SeatID,
		Date:      r.Date,
		StartTime: r.Start,
		EndTime:   r.End,
		PartySize: r.PartySize,
		Mode:      r.Mode,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SeatID:    r.SeatID,
		Date:      r.Date.String(),
		StartTime: r.Start.String(),
		EndTime:   r.End.String(),
		PartySize: r.PartySize,
		Mode:      r.Mode.String(),
	}
}

func NewOrderItemsRequestDTO() reqdto.AttachOrderItemsRequest {
	return reqdto.AttachOrderItemsRequest{
		Items: []reqdto.OrderItemRequest{
			{ItemID: "course-a", Name: "Seasonal course", Quantity: 2, Price: 680000},
			{ItemID: "sake-1", Name: "Junmai sake", Quantity: 1, Price: 120000},
		},
	}
}
