package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Recurrence is a parsed recurrence rule anchored on an activity's first date
type Recurrence struct {
	rule *rrule.RRule
}

// Parse parses an RFC 5545 rule (e.g. "FREQ=WEEKLY;BYDAY=SA") anchored at start
func Parse(rule string, start time.Time) (*Recurrence, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	opt.Dtstart = start

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}

	return &Recurrence{rule: r}, nil
}

// Validate checks the rule syntax without anchoring it
func Validate(rule string) error {
	if _, err := rrule.StrToROption(rule); err != nil {
		return fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return nil
}

// Next returns the first occurrence on or after the given time.
// ok is false when the rule has no further occurrences.
func (r *Recurrence) Next(after time.Time) (time.Time, bool) {
	next := r.rule.After(after, true)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

// Between returns all occurrences in [from, to]
func (r *Recurrence) Between(from, to time.Time) []time.Time {
	return r.rule.Between(from, to, true)
}

// ResolveDate picks the slot date for an activity:
//   - the explicit date when given
//   - otherwise the next occurrence of the recurrence on or after now
//   - otherwise the activity's start date when it has one
//
// A nil result means the activity has no date and the day check will be skipped.
func ResolveDate(explicit *time.Time, start *time.Time, rule string, now time.Time) (*time.Time, error) {
	if explicit != nil {
		d := *explicit
		return &d, nil
	}

	if start == nil {
		return nil, nil
	}

	if rule != "" {
		recurrence, err := Parse(rule, *start)
		if err != nil {
			return nil, err
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
		if next, ok := recurrence.Next(today); ok {
			return &next, nil
		}
	}

	d := *start
	return &d, nil
}
