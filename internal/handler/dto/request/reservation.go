package request

import (
	"strings"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/usecase/commands"
	"restaurant-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SeatID    string     `json:"seatId" binding:"required,max=64"`
	Date      string     `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string     `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   string     `json:"endTime" binding:"required,datetime=15:04"`
	PartySize int        `json:"partySize" binding:"required,min=1"`
	Mode      string     `json:"mode" binding:"required,oneof=drinks_only dine_and_eat"`
	GroupID   *uuid.UUID `json:"groupId,omitempty"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	w, err := parseWindow(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		SeatID:    strings.TrimSpace(r.SeatID),
		Date:      w.Date,
		StartTime: w.Start,
		EndTime:   w.End,
		PartySize: r.PartySize,
		Mode:      reservation.Mode(r.Mode),
		GroupID:   r.GroupID,
	}, nil
}

type OrderItemRequest struct {
	ItemID   string `json:"itemId" binding:"required,max=64"`
	Name     string `json:"name" binding:"required,max=200"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
	// Price is in minor currency units.
	Price int64 `json:"price" binding:"min=0"`
}

type AttachOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r AttachOrderItemsRequest) ToInput() []commands.OrderItemInput {
	items := make([]commands.OrderItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.OrderItemInput{
			ItemID:     it.ItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			PriceCents: it.Price,
		}
	}
	return items
}

type AvailabilityQuery struct {
	Date           string `form:"date" binding:"required,datetime=2006-01-02"`
	StartTime      string `form:"startTime" binding:"required,datetime=15:04"`
	EndTime        string `form:"endTime" binding:"required,datetime=15:04"`
	PartySize      int    `form:"partySize" binding:"required,min=1"`
	Mode           string `form:"mode" binding:"required,oneof=drinks_only dine_and_eat"`
	ExcludeSeatIDs string `form:"excludeSeatIds"`
}

func (q AvailabilityQuery) ToSearch() (queries.AvailabilitySearch, error) {
	w, err := parseWindow(q.Date, q.StartTime, q.EndTime)
	if err != nil {
		return queries.AvailabilitySearch{}, err
	}
	return queries.AvailabilitySearch{
		Date:           w.Date,
		StartTime:      w.Start,
		EndTime:        w.End,
		PartySize:      q.PartySize,
		Mode:           reservation.Mode(q.Mode),
		ExcludeSeatIDs: splitSeatIDs(q.ExcludeSeatIDs),
	}, nil
}

type ListReservationsQuery struct {
	UserID string `form:"userId" binding:"required,max=128"`
}

func parseWindow(date, start, end string) (reservation.Window, error) {
	d, err := reservation.ParseDate(date)
	if err != nil {
		return reservation.Window{}, err
	}
	s, err := reservation.ParseClockTime(start)
	if err != nil {
		return reservation.Window{}, err
	}
	e, err := reservation.ParseClockTime(end)
	if err != nil {
		return reservation.Window{}, err
	}
	return reservation.Window{Date: d, Start: s, End: e}, nil
}

// splitSeatIDs accepts "a,b" as well as repeated blanks and empty segments.
func splitSeatIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
