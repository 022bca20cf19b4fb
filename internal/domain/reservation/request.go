package reservation

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest marks every out-of-policy or malformed booking request.
// The more specific errors below are always joined with it.
var ErrInvalidRequest = errors.New("invalid reservation request")

var (
	ErrInvalidMode           = errors.New("invalid dining mode")
	ErrInvalidPartySize      = errors.New("party size must be positive")
	ErrInvalidTimeWindow     = errors.New("end time must be after start time")
	ErrDurationOutOfRange    = errors.New("reservation duration out of range")
	ErrOutsideOperatingHours = errors.New("reservation outside operating hours")
	ErrDateInPast            = errors.New("reservation date is in the past")
	ErrLeadTimeNotMet        = errors.New("lead time requirement not met")
)

func invalid(cause error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, cause)
	}
	return fmt.Errorf("%w: %w: %s", ErrInvalidRequest, cause, fmt.Sprintf(format, args...))
}

// Policy holds the house rules a request is checked against.
type Policy struct {
	OpenAt          ClockTime
	CloseAt         ClockTime
	MinDuration     time.Duration
	MaxDuration     time.Duration
	SameDayLeadTime time.Duration
	Location        *time.Location
}

func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		OpenAt:          MustClockTime(9, 0),
		CloseAt:         MustClockTime(23, 0),
		MinDuration:     time.Hour,
		MaxDuration:     4 * time.Hour,
		SameDayLeadTime: 6 * time.Hour,
		Location:        loc,
	}
}

// Request is a validated ask for a seat. Only NewRequest builds one.
type Request struct {
	window    Window
	partySize int
	mode      Mode
}

func NewRequest(policy Policy, now time.Time, date Date, start, end ClockTime, partySize int, mode Mode) (Request, error) {
	if !mode.IsValid() {
		return Request{}, invalid(ErrInvalidMode, "%q", mode)
	}
	if partySize < 1 {
		return Request{}, invalid(ErrInvalidPartySize, "%d", partySize)
	}
	if date.IsZero() {
		return Request{}, invalid(ErrInvalidDate, "date is required")
	}

	w := Window{Date: date, Start: start, End: end}
	if end <= start {
		return Request{}, invalid(ErrInvalidTimeWindow, "%s-%s", start, end)
	}
	if d := w.Duration(); d < policy.MinDuration || d > policy.MaxDuration {
		return Request{}, invalid(ErrDurationOutOfRange, "%s not within [%s, %s]", d, policy.MinDuration, policy.MaxDuration)
	}
	if start < policy.OpenAt || end >= policy.CloseAt {
		return Request{}, invalid(ErrOutsideOperatingHours, "open %s-%s", policy.OpenAt, policy.CloseAt)
	}

	loc := policy.Location
	if loc == nil {
		loc = time.UTC
	}
	localNow := now.In(loc)
	today := DateOf(localNow)
	if date.Before(today) {
		return Request{}, invalid(ErrDateInPast, "%s", date)
	}
	if date.Equal(today) {
		earliest := localNow.Add(policy.SameDayLeadTime)
		if date.At(start, loc).Before(earliest) {
			return Request{}, invalid(ErrLeadTimeNotMet, "same-day bookings need %s notice", policy.SameDayLeadTime)
		}
	}

	return Request{window: w, partySize: partySize, mode: mode}, nil
}

func (r Request) Window() Window { return r.window }
func (r Request) Date() Date     { return r.window.Date }
func (r Request) PartySize() int { return r.partySize }
func (r Request) Mode() Mode     { return r.mode }
