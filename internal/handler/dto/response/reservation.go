package response

import (
	"time"

	"restaurant-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemResponse struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type ReservationResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     string              `json:"userId"`
	SeatID     string              `json:"seatId"`
	Date       string              `json:"date"`
	StartTime  string              `json:"startTime"`
	EndTime    string              `json:"endTime"`
	PartySize  int                 `json:"partySize"`
	Mode       string              `json:"mode"`
	GroupID    uuid.UUID           `json:"groupId"`
	IsPrimary  bool                `json:"isPrimary"`
	Status     string              `json:"status"`
	OrderItems []OrderItemResponse `json:"orderItems,omitempty"`
	TotalCents int64               `json:"totalCents"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type ReservationEnvelope struct {
	Reservation *ReservationResponse `json:"reservation"`
}

type ReservationListEnvelope struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	res := &ReservationResponse{}
	// field names line up except the item price, which is filled below
	_ = copier.Copy(res, v)
	res.OrderItems = nil
	for _, it := range v.OrderItems {
		res.OrderItems = append(res.OrderItems, OrderItemResponse{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.PriceCents,
		})
	}
	return res
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}
