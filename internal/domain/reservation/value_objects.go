package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidClockTime = errors.New("invalid time of day")
)

// Date is a calendar day without a zone.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) String() string         { return d.t.Format(dateLayout) }
func (d Date) Time() time.Time        { return d.t }
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }

// At returns the instant the clock shows c on this day in loc.
func (d Date) At(c ClockTime, loc *time.Location) time.Time {
	y, m, day := d.t.Date()
	return time.Date(y, m, day, c.Hour(), c.Minute(), 0, 0, loc)
}

// ClockTime is a minute of the day, 00:00 to 23:59.
type ClockTime int

const minutesPerDay = 24 * 60

func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidClockTime, hour, minute)
	}
	return ClockTime(hour*60 + minute), nil
}

func MustClockTime(hour, minute int) ClockTime {
	c, err := NewClockTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClockTime accepts HH:MM and HH:MM:SS. Seconds must be zero.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Second() != 0 {
			break
		}
		return NewClockTime(t.Hour(), t.Minute())
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
}

// ClockTimeFromDuration converts an offset from midnight, as stored by postgres time columns.
func ClockTimeFromDuration(d time.Duration) (ClockTime, error) {
	if d < 0 || d >= minutesPerDay*time.Minute || d%time.Minute != 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidClockTime, d)
	}
	return ClockTime(d / time.Minute), nil
}

func (c ClockTime) Hour() int                    { return int(c) / 60 }
func (c ClockTime) Minute() int                  { return int(c) % 60 }
func (c ClockTime) SinceMidnight() time.Duration { return time.Duration(c) * time.Minute }
func (c ClockTime) String() string               { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

// Window is the half-open interval [Start, End) on Date.
type Window struct {
	Date  Date
	Start ClockTime
	End   ClockTime
}

func (w Window) Duration() time.Duration {
	return (w.End - w.Start).SinceMidnight()
}

// Overlaps is the half-open test: touching endpoints do not overlap.
func (w Window) Overlaps(other Window) bool {
	if !w.Date.Equal(other.Date) {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%s [%s,%s)", w.Date, w.Start, w.End)
}

type OrderItem struct {
	ItemID     string
	Name       string
	Quantity   int
	PriceCents int64
}

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidOrderItem = errors.New("invalid order item")
)

func NewOrderItem(itemID, name string, quantity int, priceCents int64) (OrderItem, error) {
	itemID = strings.TrimSpace(itemID)
	name = strings.TrimSpace(name)
	switch {
	case itemID == "":
		return OrderItem{}, fmt.Errorf("%w: item id is required", ErrInvalidOrderItem)
	case name == "":
		return OrderItem{}, fmt.Errorf("%w: name is required", ErrInvalidOrderItem)
	case quantity < 1:
		return OrderItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrderItem)
	case priceCents < 0:
		return OrderItem{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidOrderItem)
	}
	return OrderItem{ItemID: itemID, Name: name, Quantity: quantity, PriceCents: priceCents}, nil
}

func (i OrderItem) SubtotalCents() int64 {
	return int64(i.Quantity) * i.PriceCents
}
