package bootstrap

import (
	"fmt"
	"time"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/pkg/clock"
	"restaurant-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		clock.NewRealClock,
		seat.DefaultCatalog,
		NewPolicy,
		reservation.NewFactory,
	),
)

// NewPolicy reads the house rules. The restaurant's own zone decides what "today" is.
func NewPolicy(cfg config.Config) (reservation.Policy, error) {
	rc := cfg.Restaurant

	loc, err := time.LoadLocation(rc.TimeZone)
	if err != nil {
		return reservation.Policy{}, fmt.Errorf("RESTAURANT_TIMEZONE: %w", err)
	}
	openAt, err := reservation.ParseClockTime(rc.OpenAt)
	if err != nil {
		return reservation.Policy{}, fmt.Errorf("RESTAURANT_OPEN_AT: %w", err)
	}
	closeAt, err := reservation.ParseClockTime(rc.CloseAt)
	if err != nil {
		return reservation.Policy{}, fmt.Errorf("RESTAURANT_CLOSE_AT: %w", err)
	}
	if closeAt <= openAt {
		return reservation.Policy{}, fmt.Errorf("RESTAURANT_CLOSE_AT %s must be after RESTAURANT_OPEN_AT %s", closeAt, openAt)
	}
	if rc.MinDuration <= 0 || rc.MaxDuration < rc.MinDuration {
		return reservation.Policy{}, fmt.Errorf("invalid reservation duration bounds %s..%s", rc.MinDuration, rc.MaxDuration)
	}

	return reservation.Policy{
		OpenAt:          openAt,
		CloseAt:         closeAt,
		MinDuration:     rc.MinDuration,
		MaxDuration:     rc.MaxDuration,
		SameDayLeadTime: rc.SameDayLeadTime,
		Location:        loc,
	}, nil
}
