//go:build unit

package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/handler/httperr"
	"restaurant-reservation/internal/infra"
	"restaurant-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid request joined with its cause", fmt.Errorf("%w: %w", reservation.ErrInvalidRequest, reservation.ErrDurationOutOfRange), http.StatusBadRequest},
		{"invalid date", fmt.Errorf("%w: %q", reservation.ErrInvalidDate, "2025-13-01"), http.StatusBadRequest},
		{"invalid order item", reservation.ErrInvalidOrderItem, http.StatusBadRequest},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden},
		{"unknown seat", seat.ErrSeatNotFound, http.StatusNotFound},
		{"missing reservation marked over a repository error", errs.Mark(infra.WrapRepoErr("gone", nil, infra.KindNotFound), errs.ErrReservationNotFound), http.StatusNotFound},
		{"conflict marked over a repository error", errs.Mark(infra.WrapRepoErr("23P01", nil, infra.KindConflict), errs.ErrReservationConflict), http.StatusConflict},
		{"already attached", reservation.ErrOrderItemsAlreadyAttached, http.StatusConflict},
		{"cancelled", reservation.ErrReservationCancelled, http.StatusConflict},
		{"duplicate request", errs.ErrDuplicateRequest, http.StatusConflict},
		{"key reused", errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity},
		{"store unavailable", errs.Wrap(errs.ErrStoreUnavailable, "list overlapping"), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := httperr.Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestStatus_ConflictMessage(t *testing.T) {
	_, msg := httperr.Status(errs.ErrReservationConflict)
	assert.Equal(t, "Seat no longer available", msg)
}
