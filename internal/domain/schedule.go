package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RidingSchoolService/pkg/types"
)

var (
	// ErrInvalidConfig is returned when calendar settings violate an invariant.
	// Surfaced at startup and at admin save time, never during slot generation.
	ErrInvalidConfig = errors.New("domain: invalid calendar configuration")
)

// TimeWindow is a half-open [Start, End) interval within a single day
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks the start < end invariant (no overnight wrap)
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: window start: %v", ErrInvalidConfig, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: window end: %v", ErrInvalidConfig, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: window start %s must be before end %s", ErrInvalidConfig, w.Start, w.End)
	}
	return nil
}

// Contains reports whether t falls within [Start, End)
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// SpanMinutes returns the window length in minutes
func (w TimeWindow) SpanMinutes() (int, error) {
	start, err := w.Start.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := w.End.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// CalendarConfig holds the admin-editable scheduling parameters.
// Always passed by value into the engine; the persisted row in the settings
// table is the single source of truth, never process-wide mutable state.
type CalendarConfig struct {
	WorkWindow           TimeWindow
	LunchStart           types.TimeString
	LunchDurationMinutes int
	BufferMinutes        int

	// RepeatHorizonWeeks caps weekly-repeat expansion: 0 keeps the
	// historical "rest of the calendar month" behavior, N > 0 caps the
	// series at N occurrences total.
	RepeatHorizonWeeks int

	// AllowAdminOverrideConflict controls whether an admin move into an
	// occupied interval succeeds with a warning (true) or is rejected (false).
	AllowAdminOverrideConflict bool

	UpdatedAt time.Time
}

// LunchWindow returns the lunch exclusion interval derived from LunchStart
// and LunchDurationMinutes. A zero duration means no lunch break.
func (c CalendarConfig) LunchWindow() (TimeWindow, error) {
	if c.LunchDurationMinutes <= 0 {
		return TimeWindow{}, nil
	}
	end, err := c.LunchStart.AddMinutes(c.LunchDurationMinutes)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: c.LunchStart, End: end}, nil
}

// Validate enforces the configuration invariants from the settings screen:
// valid work window, non-negative buffer, lunch inside working hours.
func (c CalendarConfig) Validate() error {
	if err := c.WorkWindow.Validate(); err != nil {
		return err
	}

	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer minutes must not be negative, got %d", ErrInvalidConfig, c.BufferMinutes)
	}
	if c.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer minutes must not exceed %d, got %d", ErrInvalidConfig, MaxBufferMinutes, c.BufferMinutes)
	}

	if c.LunchDurationMinutes < 0 {
		return fmt.Errorf("%w: lunch duration must not be negative, got %d", ErrInvalidConfig, c.LunchDurationMinutes)
	}
	if c.LunchDurationMinutes > MaxLunchDurationMinutes {
		return fmt.Errorf("%w: lunch duration must not exceed %d, got %d", ErrInvalidConfig, MaxLunchDurationMinutes, c.LunchDurationMinutes)
	}

	if c.LunchDurationMinutes > 0 {
		lunch, err := c.LunchWindow()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if lunch.Start.IsBefore(c.WorkWindow.Start) || lunch.End.IsAfter(c.WorkWindow.End) {
			return fmt.Errorf("%w: lunch window %s-%s is outside working hours %s-%s",
				ErrInvalidConfig, lunch.Start, lunch.End, c.WorkWindow.Start, c.WorkWindow.End)
		}
	}

	if c.RepeatHorizonWeeks < 0 {
		return fmt.Errorf("%w: repeat horizon must not be negative, got %d", ErrInvalidConfig, c.RepeatHorizonWeeks)
	}

	return nil
}

// DaySchedule is the effective schedule for one date: the global config with
// a per-date lunch override applied, if one exists.
type DaySchedule struct {
	Date                 time.Time
	WorkWindow           TimeWindow
	LunchWindow          TimeWindow
	LunchDurationMinutes int
	BufferMinutes        int
}

// LastBookableStart returns the latest start time that still fits the
// requested duration, or ok=false when the duration does not fit the day.
func (d DaySchedule) LastBookableStart(durationMinutes int) (types.TimeString, bool) {
	span, err := d.WorkWindow.SpanMinutes()
	if err != nil || durationMinutes > span {
		return "", false
	}
	last, err := d.WorkWindow.End.AddMinutes(-durationMinutes)
	if err != nil {
		return "", false
	}
	return last, true
}

// LunchOverride is a per-date replacement for the global lunch window
type LunchOverride struct {
	Date                 time.Time
	LunchStart           types.TimeString
	LunchDurationMinutes int
}

// BlockedDate marks a date on which no bookings are accepted (holiday, closure)
type BlockedDate struct {
	Date   time.Time
	Reason string
}
