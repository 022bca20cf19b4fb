package reservation

import "restaurant-reservation/internal/domain/seat"

// BookedSlot is the part of an existing active reservation that matters for availability.
type BookedSlot struct {
	SeatID string
	Window Window
}

type SeatSet map[string]struct{}

func NewSeatSet(ids ...string) SeatSet {
	s := make(SeatSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SeatSet) Add(id string) { s[id] = struct{}{} }

func (s SeatSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// TakenSeats collects the seats that cannot be offered for w: every seat with a booking
// overlapping w, plus the seats the caller already picked in this session.
func TakenSeats(w Window, booked []BookedSlot, alreadySelected []string) SeatSet {
	taken := NewSeatSet(alreadySelected...)
	for _, b := range booked {
		if b.Window.Overlaps(w) {
			taken.Add(b.SeatID)
		}
	}
	return taken
}

// Suits reports whether s can host the request, ignoring existing bookings.
func Suits(s seat.Seat, req Request) bool {
	return s.Fits(req.PartySize()) && req.Mode().Accepts(s.Capability)
}

// FreeSeats filters the catalog down to the seats that can host req. The result is a
// set; it is returned in catalog order only to keep responses deterministic.
func FreeSeats(catalog *seat.Catalog, req Request, taken SeatSet) []string {
	free := make([]string, 0, catalog.Len())
	for _, s := range catalog.All() {
		if taken.Has(s.ID) || !Suits(s, req) {
			continue
		}
		free = append(free, s.ID)
	}
	return free
}
