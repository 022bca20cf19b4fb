//go:build unit

package seat_test

import (
	"testing"

	"restaurant-reservation/internal/domain/seat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name    string
		seats   []seat.Seat
		wantErr error
	}{
		{
			name: "success",
			seats: []seat.Seat{
				{ID: "stool1", Capacity: 1, Capability: seat.CapabilityDrinksOnly},
				{ID: "couch", Capacity: 8, Capability: seat.CapabilityFull},
			},
		},
		{
			name:    "empty id",
			seats:   []seat.Seat{{ID: "  ", Capacity: 1, Capability: seat.CapabilityFull}},
			wantErr: seat.ErrEmptySeatID,
		},
		{
			name: "duplicate id",
			seats: []seat.Seat{
				{ID: "couch", Capacity: 8, Capability: seat.CapabilityFull},
				{ID: "couch", Capacity: 2, Capability: seat.CapabilityFull},
			},
			wantErr: seat.ErrDuplicateSeatID,
		},
		{
			name:    "zero capacity",
			seats:   []seat.Seat{{ID: "stool1", Capacity: 0, Capability: seat.CapabilityDrinksOnly}},
			wantErr: seat.ErrInvalidCapacity,
		},
		{
			name:    "unknown capability",
			seats:   []seat.Seat{{ID: "stool1", Capacity: 1, Capability: "standing"}},
			wantErr: seat.ErrInvalidCapability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := seat.NewCatalog(tt.seats...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.seats), c.Len())
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c := seat.DefaultCatalog()

	s, err := c.Lookup("couch")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Capacity)
	assert.Equal(t, seat.CapabilityFull, s.Capability)

	_, err = c.Lookup("rooftop")
	assert.ErrorIs(t, err, seat.ErrSeatNotFound)
}

func TestCatalogAllIsStableAndDetached(t *testing.T) {
	c := seat.DefaultCatalog()

	first := c.All()
	second := c.All()
	assert.Equal(t, first, second)

	first[0].Capacity = 99
	again, err := c.Lookup(second[0].ID)
	require.NoError(t, err)
	assert.Equal(t, second[0].Capacity, again.Capacity)
}

func TestSeatFits(t *testing.T) {
	s := seat.Seat{ID: "2table", Capacity: 2, Capability: seat.CapabilityFull}
	assert.True(t, s.Fits(1))
	assert.True(t, s.Fits(2))
	assert.False(t, s.Fits(3))
}
