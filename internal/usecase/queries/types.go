package queries

import (
	"time"

	"restaurant-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

// ReservationView is the read model handed to the transport layer.
type ReservationView struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"user_id"`
	SeatID     string          `json:"seat_id"`
	Date       string          `json:"date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	PartySize  int             `json:"party_size"`
	Mode       string          `json:"mode"`
	GroupID    uuid.UUID       `json:"group_id"`
	IsPrimary  bool            `json:"is_primary"`
	Status     string          `json:"status"`
	OrderItems []OrderItemView `json:"order_items,omitempty"`
	TotalCents int64           `json:"total_cents"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type OrderItemView struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

type SeatView struct {
	ID         string `json:"id"`
	Capacity   int    `json:"capacity"`
	Capability string `json:"capability"`
}

func NewReservationView(res *reservation.Reservation) *ReservationView {
	w := res.Window()
	items := res.OrderItems()

	view := &ReservationView{
		ID:         res.ID(),
		UserID:     res.UserID(),
		SeatID:     res.SeatID(),
		Date:       w.Date.String(),
		StartTime:  w.Start.String(),
		EndTime:    w.End.String(),
		PartySize:  res.PartySize(),
		Mode:       res.Mode().String(),
		GroupID:    res.GroupID(),
		IsPrimary:  res.IsPrimary(),
		Status:     res.Status().String(),
		TotalCents: reservation.OrderTotalCents(items),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
	for _, it := range items {
		view.OrderItems = append(view.OrderItems, OrderItemView{
			ItemID:     it.ItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return view
}
