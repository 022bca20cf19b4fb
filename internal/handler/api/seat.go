package api

import (
	"net/http"

	reqdto "restaurant-reservation/internal/handler/dto/request"
	resdto "restaurant-reservation/internal/handler/dto/response"
	"restaurant-reservation/internal/handler/httperr"
	"restaurant-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SeatHandler struct {
	seats        queries.SeatQueries
	availability queries.AvailabilityQueries
}

func NewSeatHandler(seats queries.SeatQueries, availability queries.AvailabilityQueries) *SeatHandler {
	return &SeatHandler{seats: seats, availability: availability}
}

// @Summary List seats
// @Description Floor plan seats in catalog order
// @Tags seats
// @Produce json
// @Success 200 {object} resdto.SeatListResponse
// @Router /api/seats [get]
func (h *SeatHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromSeatViews(h.seats.List(c.Request.Context())))
}

// @Summary Seat availability
// @Description Seats that can host the party for the whole window
// @Tags seats
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:MM)"
// @Param endTime query string true "End time (HH:MM)"
// @Param partySize query int true "Party size"
// @Param mode query string true "drinks_only or dine_and_eat"
// @Param excludeSeatIds query string false "Comma separated seat ids already picked"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/availability [get]
func (h *SeatHandler) Availability(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	search, err := q.ToSearch()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	ids, err := h.availability.Search(c.Request.Context(), search)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(ids))
}
