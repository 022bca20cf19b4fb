package seat

import "errors"

var (
	ErrSeatNotFound      = errors.New("seat not found")
	ErrEmptySeatID       = errors.New("seat id cannot be empty")
	ErrDuplicateSeatID   = errors.New("duplicate seat id")
	ErrInvalidCapacity   = errors.New("seat capacity must be positive")
	ErrInvalidCapability = errors.New("invalid seat capability")
)

type Capability string

const (
	CapabilityDrinksOnly Capability = "drinks_only"
	CapabilityFull       Capability = "full"
)

func (c Capability) String() string {
	return string(c)
}

func (c Capability) IsValid() bool {
	switch c {
	case CapabilityDrinksOnly, CapabilityFull:
		return true
	default:
		return false
	}
}

type Seat struct {
	ID         string
	Capacity   int
	Capability Capability
}

// Fits reports whether a party of the given size can sit here. Equal is enough.
func (s Seat) Fits(partySize int) bool {
	return s.Capacity >= partySize
}
