// Package availability decides whether a candidate is reachable before it
// closes, given the travel distance.
package availability

import (
	"fmt"
	"time"

	"github.com/roviahq/rovia/internal/domain/model"
)

// Default evaluation constants.
const (
	defaultTravelSpeedKmh = 30.0
	defaultSafetyMargin   = 20 * time.Minute
	minutesPerHour        = 60.0
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithClock injects the time source. Tests must pin this to a fixed clock;
// the default is wall-clock time.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithTravelSpeed sets the assumed average travel speed in km/h.
func WithTravelSpeed(kmh float64) Option {
	return func(e *Evaluator) {
		if kmh > 0 {
			e.speedKmh = kmh
		}
	}
}

// WithSafetyMargin sets how long before closing the arrival must happen.
func WithSafetyMargin(margin time.Duration) Option {
	return func(e *Evaluator) {
		if margin >= 0 {
			e.margin = margin
		}
	}
}

// Evaluator computes the three-state availability status. It is stateless
// apart from the injected clock.
type Evaluator struct {
	now      func() time.Time
	speedKmh float64
	margin   time.Duration
}

// NewEvaluator creates an Evaluator with configuration options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		now:      time.Now,
		speedKmh: defaultTravelSpeedKmh,
		margin:   defaultSafetyMargin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns whether the candidate is reachable in time and its
// status. The open window is [open, close). Status open implies available;
// closed and closing_soon imply unavailable. A malformed window is treated
// as closed (catalog data errors are handled locally, not raised).
func (e *Evaluator) Evaluate(open, close string, distanceKm float64) (bool, model.AvailabilityStatus) {
	openMin, err := parseClock(open)
	if err != nil {
		return false, model.StatusClosed
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return false, model.StatusClosed
	}

	now := e.now()
	nowMin := float64(now.Hour())*minutesPerHour + float64(now.Minute()) +
		float64(now.Second())/60.0

	if nowMin < float64(openMin) || nowMin >= float64(closeMin) {
		return false, model.StatusClosed
	}

	travelMin := distanceKm / e.speedKmh * minutesPerHour
	latestArrival := float64(closeMin) - e.margin.Minutes()
	if nowMin+travelMin <= latestArrival {
		return true, model.StatusOpen
	}
	return false, model.StatusClosingSoon
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
