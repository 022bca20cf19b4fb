package response

import (
	"restaurant-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SeatResponse struct {
	ID         string `json:"id"`
	Capacity   int    `json:"capacity"`
	Capability string `json:"capability"`
}

type SeatListResponse struct {
	Seats []SeatResponse `json:"seats"`
}

type AvailabilityResponse struct {
	AvailableSeatIDs []string `json:"availableSeatIds"`
}

func FromSeatViews(views []queries.SeatView) *SeatListResponse {
	seats := make([]SeatResponse, 0, len(views))
	_ = copier.Copy(&seats, &views)
	return &SeatListResponse{Seats: seats}
}

func NewAvailabilityResponse(ids []string) *AvailabilityResponse {
	if ids == nil {
		ids = []string{}
	}
	return &AvailabilityResponse{AvailableSeatIDs: ids}
}
