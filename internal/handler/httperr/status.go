package httperr

import (
	"net/http"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type mapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first matching target wins.
var mappings = []mapping{
	{reservation.ErrInvalidRequest, http.StatusBadRequest, "Invalid reservation request"},
	{reservation.ErrInvalidOrderItem, http.StatusBadRequest, "Invalid order item"},
	{reservation.ErrEmptyOrder, http.StatusBadRequest, "Order must contain at least one item"},
	{reservation.ErrInvalidDate, http.StatusBadRequest, "Invalid date"},
	{reservation.ErrInvalidClockTime, http.StatusBadRequest, "Invalid time of day"},
	{errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{seat.ErrSeatNotFound, http.StatusNotFound, "Seat not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrGroupNotFound, http.StatusNotFound, "Reservation group not found"},
	{errs.ErrReservationConflict, http.StatusConflict, "Seat no longer available"},
	{reservation.ErrOrderItemsAlreadyAttached, http.StatusConflict, "Order items already attached"},
	{reservation.ErrReservationCancelled, http.StatusConflict, "Reservation is cancelled"},
	{errs.ErrDuplicateRequest, http.StatusConflict, "Request with this idempotency key is in progress"},
	{errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency key reused with a different request"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "Reservation store unavailable"},
}

// Status maps err onto the HTTP status and public message for it.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Abort maps err with Status and aborts. Validation failures carry their cause as detail.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	var detail any
	if status == http.StatusBadRequest {
		detail = err.Error()
	}
	AbortWithError(c, status, err, msg, detail)
}
