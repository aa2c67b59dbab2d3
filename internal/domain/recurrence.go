package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRecurrenceRule is returned for a structurally invalid rule
	ErrInvalidRecurrenceRule = errors.New("invalid recurrence rule")
)

// RecurrenceKind enumerates supported recurrence patterns
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// RecurrenceRule describes how a seed occurrence repeats.
// Termination is either EndDate (inclusive), Count occurrences, or neither,
// in which case expansion is capped at MaxSeriesOccurrences.
type RecurrenceRule struct {
	Kind     RecurrenceKind
	Interval int // every N units, >= 1
	// Weekly only: weekdays 0-6 (0 = Sunday); empty = the seed's weekday
	Weekdays []int
	// Monthly only: 1-31; 0 = the seed's day of month. Months shorter than
	// the target day clamp to their last day.
	DayOfMonth int
	EndDate    *time.Time
	Count      *int
}

// IsRecurring returns true for any kind other than RecurrenceNone
func (r RecurrenceRule) IsRecurring() bool {
	return r.Kind != RecurrenceNone && r.Kind != ""
}

// Validate checks the structural invariants of the rule.
// A rule failing validation must be rejected before any expansion begins.
func (r RecurrenceRule) Validate() error {
	switch r.Kind {
	case RecurrenceNone, "":
		return nil
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return fmt.Errorf("%w: unknown recurrence kind %q", ErrInvalidRecurrenceRule, r.Kind)
	}

	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1, got %d", ErrInvalidRecurrenceRule, r.Interval)
	}

	for _, wd := range r.Weekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday %d outside 0-6", ErrInvalidRecurrenceRule, wd)
		}
	}
	if r.Kind != RecurrenceWeekly && len(r.Weekdays) > 0 {
		return fmt.Errorf("%w: weekdays are only valid for weekly rules", ErrInvalidRecurrenceRule)
	}

	if r.DayOfMonth != 0 {
		if r.Kind != RecurrenceMonthly {
			return fmt.Errorf("%w: dayOfMonth is only valid for monthly rules", ErrInvalidRecurrenceRule)
		}
		if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
			return fmt.Errorf("%w: dayOfMonth %d outside 1-31", ErrInvalidRecurrenceRule, r.DayOfMonth)
		}
	}

	if r.Count != nil && *r.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidRecurrenceRule, *r.Count)
	}

	return nil
}
