package reservation

import "restaurant-reservation/internal/domain/seat"

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	default:
		return false
	}
}

// Mode is the dining intent of a party.
type Mode string

const (
	ModeDrinksOnly Mode = "drinks_only"
	ModeDineAndEat Mode = "dine_and_eat"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeDrinksOnly, ModeDineAndEat:
		return true
	default:
		return false
	}
}

// Accepts reports whether a seat of the given capability can host this mode.
func (m Mode) Accepts(c seat.Capability) bool {
	switch m {
	case ModeDineAndEat:
		return c == seat.CapabilityFull
	case ModeDrinksOnly:
		return c == seat.CapabilityFull || c == seat.CapabilityDrinksOnly
	default:
		return false
	}
}
