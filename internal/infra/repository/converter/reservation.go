package converter

import (
	"encoding/json"
	"fmt"
	"math"

	"restaurant-reservation/internal/domain/reservation"
	sqlc "restaurant-reservation/internal/infra/sqlc/generated"
	"restaurant-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type orderItemRecord struct {
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

func ReservationToInfra(res *reservation.Reservation) (sqlc.CreateReservationParams, error) {
	partySize := res.PartySize()
	if partySize > math.MaxInt32 || partySize < 1 {
		return sqlc.CreateReservationParams{}, fmt.Errorf("party size out of range: %d", partySize)
	}

	orderItems, err := OrderItemsToJSON(res.OrderItems())
	if err != nil {
		return sqlc.CreateReservationParams{}, err
	}

	start, end, date := WindowToPgtype(res.Window())
	return sqlc.CreateReservationParams{
		ID:              res.ID(),
		UserID:          res.UserID(),
		SeatID:          res.SeatID(),
		ReservationDate: date,
		StartTime:       start,
		EndTime:         end,
		PartySize:       int32(partySize),
		Mode:            res.Mode().String(),
		GroupID:         res.GroupID(),
		IsPrimary:       res.IsPrimary(),
		Status:          res.Status().String(),
		OrderItems:      orderItems,
		CreatedAt:       pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(res.UpdatedAt()),
	}, nil
}

// ReservationFromRow rebuilds the aggregate. All reservation row shapes share this layout.
func ReservationFromRow(row sqlc.GetReservationByIDRow) (*reservation.Reservation, error) {
	window, err := WindowFromPgtype(row.ReservationDate, row.StartTime, row.EndTime)
	if err != nil {
		return nil, err
	}
	items, err := OrderItemsFromJSON(row.OrderItems)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.UserID,
		row.SeatID,
		window,
		int(row.PartySize),
		reservation.Mode(row.Mode),
		row.GroupID,
		row.IsPrimary,
		reservation.Status(row.Status),
		items,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func WindowToPgtype(w reservation.Window) (start, end pgtype.Time, date pgtype.Date) {
	return pgconv.TimeOfDayToPgtype(w.Start.SinceMidnight()),
		pgconv.TimeOfDayToPgtype(w.End.SinceMidnight()),
		pgconv.DateToPgtype(w.Date.Time())
}

func WindowFromPgtype(date pgtype.Date, start, end pgtype.Time) (reservation.Window, error) {
	d, err := pgconv.DateFromPgtype(date)
	if err != nil {
		return reservation.Window{}, err
	}
	startOffset, err := pgconv.TimeOfDayFromPgtype(start)
	if err != nil {
		return reservation.Window{}, err
	}
	endOffset, err := pgconv.TimeOfDayFromPgtype(end)
	if err != nil {
		return reservation.Window{}, err
	}
	s, err := reservation.ClockTimeFromDuration(startOffset)
	if err != nil {
		return reservation.Window{}, err
	}
	e, err := reservation.ClockTimeFromDuration(endOffset)
	if err != nil {
		return reservation.Window{}, err
	}
	return reservation.Window{Date: reservation.DateOf(d), Start: s, End: e}, nil
}

// OrderItemsToJSON returns nil for an empty list so the column stays NULL.
func OrderItemsToJSON(items []reservation.OrderItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	records := make([]orderItemRecord, len(items))
	for i, it := range items {
		records[i] = orderItemRecord{
			ItemID:     it.ItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		}
	}
	return json.Marshal(records)
}

func OrderItemsFromJSON(raw []byte) ([]reservation.OrderItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var records []orderItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	items := make([]reservation.OrderItem, len(records))
	for i, r := range records {
		items[i] = reservation.OrderItem{
			ItemID:     r.ItemID,
			Name:       r.Name,
			Quantity:   r.Quantity,
			PriceCents: r.PriceCents,
		}
	}
	return items, nil
}
