package seat

import (
	"fmt"
	"strings"
)

// Catalog is the fixed floor plan. It never changes after construction, so a single
// instance is shared by every request.
type Catalog struct {
	seats []Seat
	index map[string]int
}

func NewCatalog(seats ...Seat) (*Catalog, error) {
	c := &Catalog{
		seats: make([]Seat, 0, len(seats)),
		index: make(map[string]int, len(seats)),
	}
	for _, s := range seats {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, ErrEmptySeatID
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeatID, s.ID)
		}
		if s.Capacity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCapacity, s.ID)
		}
		if !s.Capability.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCapability, s.ID)
		}
		c.index[s.ID] = len(c.seats)
		c.seats = append(c.seats, s)
	}
	return c, nil
}

// DefaultCatalog is the compiled-in floor plan of the restaurant.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Seat{ID: "stool1", Capacity: 1, Capability: CapabilityDrinksOnly},
		Seat{ID: "stool2", Capacity: 1, Capability: CapabilityDrinksOnly},
		Seat{ID: "stool3", Capacity: 1, Capability: CapabilityDrinksOnly},
		Seat{ID: "stool4", Capacity: 1, Capability: CapabilityDrinksOnly},
		Seat{ID: "2table", Capacity: 2, Capability: CapabilityFull},
		Seat{ID: "2table2", Capacity: 2, Capability: CapabilityFull},
		Seat{ID: "4table", Capacity: 4, Capability: CapabilityFull},
		Seat{ID: "4table2", Capacity: 4, Capability: CapabilityFull},
		Seat{ID: "6table", Capacity: 6, Capability: CapabilityFull},
		Seat{ID: "couch", Capacity: 8, Capability: CapabilityFull},
	)
	if err != nil {
		panic("invalid default seat catalog: " + err.Error())
	}
	return c
}

func (c *Catalog) Lookup(id string) (Seat, error) {
	i, ok := c.index[id]
	if !ok {
		return Seat{}, ErrSeatNotFound
	}
	return c.seats[i], nil
}

// All returns the seats in declaration order. The slice is a copy.
func (c *Catalog) All() []Seat {
	out := make([]Seat, len(c.seats))
	copy(out, c.seats)
	return out
}

func (c *Catalog) Len() int {
	return len(c.seats)
}
