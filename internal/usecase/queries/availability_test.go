//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/errs"
	"restaurant-reservation/internal/usecase/queries"
	queriesmock "restaurant-reservation/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var tokyo = time.FixedZone("Asia/Tokyo", 9*60*60)

func hm(h, m int) reservation.ClockTime {
	return reservation.MustClockTime(h, m)
}

func newFactory() *reservation.Factory {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, tokyo)
	return reservation.NewFactory(clock.NewMockClock(now), reservation.DefaultPolicy(tokyo))
}

var tomorrow = reservation.NewDate(2025, 6, 2)

func TestAvailabilityQueries_ComputeAvailable(t *testing.T) {
	ctx := context.Background()
	factory := newFactory()

	testCases := []struct {
		name            string
		partySize       int
		mode            reservation.Mode
		booked          []reservation.BookedSlot
		alreadySelected []string
		expected        []string
	}{
		{
			name:      "nothing booked: every seat large enough",
			partySize: 4,
			mode:      reservation.ModeDineAndEat,
			expected:  []string{"4table", "4table2", "6table", "couch"},
		},
		{
			name:      "drinks only party of one fits anywhere",
			partySize: 1,
			mode:      reservation.ModeDrinksOnly,
			expected:  []string{"stool1", "stool2", "stool3", "stool4", "2table", "2table2", "4table", "4table2", "6table", "couch"},
		},
		{
			name:      "dining excludes stools",
			partySize: 1,
			mode:      reservation.ModeDineAndEat,
			expected:  []string{"2table", "2table2", "4table", "4table2", "6table", "couch"},
		},
		{
			name:      "overlapping booking removes the seat",
			partySize: 4,
			mode:      reservation.ModeDineAndEat,
			booked: []reservation.BookedSlot{
				{SeatID: "4table", Window: reservation.Window{Date: tomorrow, Start: hm(19, 0), End: hm(21, 0)}},
			},
			expected: []string{"4table2", "6table", "couch"},
		},
		{
			name:      "touching booking keeps the seat",
			partySize: 4,
			mode:      reservation.ModeDineAndEat,
			booked: []reservation.BookedSlot{
				{SeatID: "4table", Window: reservation.Window{Date: tomorrow, Start: hm(20, 0), End: hm(22, 0)}},
			},
			expected: []string{"4table", "4table2", "6table", "couch"},
		},
		{
			name:            "already selected seats are excluded",
			partySize:       4,
			mode:            reservation.ModeDineAndEat,
			alreadySelected: []string{"couch", "6table"},
			expected:        []string{"4table", "4table2"},
		},
		{
			name:      "party larger than every seat",
			partySize: 9,
			mode:      reservation.ModeDineAndEat,
			expected:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookedSlotReadStore(ctrl)
			q := queries.NewAvailabilityQueries(store, seat.DefaultCatalog(), factory)

			req, err := factory.NewRequest(tomorrow, hm(18, 0), hm(20, 0), tc.partySize, tc.mode)
			require.NoError(t, err)
			store.EXPECT().FindOverlapping(ctx, req.Window()).Return(tc.booked, nil)

			got, err := q.ComputeAvailable(ctx, req, tc.alreadySelected)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.expected, got)
		})
	}
}

func TestAvailabilityQueries_ComputeAvailable_StoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookedSlotReadStore(ctrl)
	factory := newFactory()
	q := queries.NewAvailabilityQueries(store, seat.DefaultCatalog(), factory)

	req, err := factory.NewRequest(tomorrow, hm(18, 0), hm(20, 0), 2, reservation.ModeDineAndEat)
	require.NoError(t, err)
	store.EXPECT().FindOverlapping(ctx, gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err = q.ComputeAvailable(ctx, req, nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))
}

func TestAvailabilityQueries_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid request never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookedSlotReadStore(ctrl)
		q := queries.NewAvailabilityQueries(store, seat.DefaultCatalog(), newFactory())

		_, err := q.Search(ctx, queries.AvailabilitySearch{
			Date: tomorrow, StartTime: hm(20, 0), EndTime: hm(18, 0), PartySize: 2, Mode: reservation.ModeDineAndEat,
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, reservation.ErrInvalidRequest))
	})

	t.Run("excluded seats are honoured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookedSlotReadStore(ctrl)
		q := queries.NewAvailabilityQueries(store, seat.DefaultCatalog(), newFactory())

		store.EXPECT().FindOverlapping(ctx, gomock.Any()).Return(nil, nil)
		got, err := q.Search(ctx, queries.AvailabilitySearch{
			Date: tomorrow, StartTime: hm(18, 0), EndTime: hm(20, 0), PartySize: 6, Mode: reservation.ModeDineAndEat,
			ExcludeSeatIDs: []string{"6table"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"couch"}, got)
	})
}
