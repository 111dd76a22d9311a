package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ErrInvalidPattern indicates a recurrence pattern that fails validation.
var ErrInvalidPattern = errors.New("invalid recurrence pattern")

// ErrNoOccurrence indicates the bounded search found no matching date.
var ErrNoOccurrence = errors.New("no occurrence within search window")

// maxSearchSteps bounds NextFrom so a sparse pattern cannot loop forever.
const maxSearchSteps = 100

// defaultWindowDays is the expansion window applied when neither the caller
// nor the pattern supplies an end date.
const defaultWindowDays = 90

// Pattern describes a generalized recurrence: every Interval days, weeks or
// months, optionally restricted to specific weekdays. Day 0 is Sunday.
type Pattern struct {
	Frequency  Frequency      `json:"frequency"`
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"`
	Interval   int            `json:"interval"`
	EndDate    *time.Time     `json:"end_date,omitempty"`
}

// Validate checks the pattern against now (used only for the end-date-in-
// the-past rule). All problems are reported in a single error wrapping
// ErrInvalidPattern.
func (p Pattern) Validate(now time.Time) error {
	var problems []string

	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		problems = append(problems, fmt.Sprintf("frequency must be daily, weekly or monthly, got %q", p.Frequency))
	}

	if p.Interval < 1 {
		problems = append(problems, "interval must be at least 1")
	}

	if p.Frequency == FrequencyWeekly && len(p.DaysOfWeek) == 0 {
		problems = append(problems, "weekly patterns must specify at least one day of the week")
	}

	for _, day := range p.DaysOfWeek {
		if day < time.Sunday || day > time.Saturday {
			problems = append(problems, fmt.Sprintf("day of week %d out of range 0-6", day))
			break
		}
	}

	if p.EndDate != nil && p.EndDate.Before(now) {
		problems = append(problems, "end date cannot be in the past")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPattern, strings.Join(problems, "; "))
	}
	return nil
}

// ShouldOccurOn reports whether the pattern produces an occurrence on the
// given date. Daily and monthly patterns match every candidate date; the
// interval controls the step size in Next, not which dates match.
func (p Pattern) ShouldOccurOn(date time.Time) bool {
	switch p.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		for _, day := range p.DaysOfWeek {
			if date.Weekday() == day {
				return true
			}
		}
		return false
	case FrequencyMonthly:
		return true
	}
	return false
}

// Next advances date by one pattern step.
func (p Pattern) Next(date time.Time) time.Time {
	switch p.Frequency {
	case FrequencyDaily:
		return date.AddDate(0, 0, p.Interval)
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7*p.Interval)
	case FrequencyMonthly:
		return date.AddDate(0, p.Interval, 0)
	}
	return date
}

// NextFrom returns the first date at or after from that matches the pattern,
// stepping at most maxSearchSteps times.
func NextFrom(from time.Time, p Pattern) (time.Time, error) {
	if err := p.Validate(from); err != nil {
		return time.Time{}, err
	}

	current := from
	for i := 0; i < maxSearchSteps; i++ {
		if p.ShouldOccurOn(current) {
			return current, nil
		}
		current = p.Next(current)
	}
	return time.Time{}, ErrNoOccurrence
}

// Timeblock is a concrete start/end pair used as both the template for and
// the product of pattern expansion.
type Timeblock struct {
	Start time.Time
	End   time.Time
}

// Expand produces one timeblock per matching date between start and the
// resolved end date, both inclusive. Each instance takes its date from the
// occurrence date and its time of day from base. The end date resolves to
// the explicit argument, else the pattern's end date, else start plus 90
// days. Patterns that cannot terminate are rejected.
func Expand(base Timeblock, p Pattern, start time.Time, end *time.Time) ([]Timeblock, error) {
	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return nil, fmt.Errorf("%w: frequency %q", ErrInvalidPattern, p.Frequency)
	}
	if p.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be at least 1", ErrInvalidPattern)
	}

	finalEnd := start.AddDate(0, 0, defaultWindowDays)
	if p.EndDate != nil {
		finalEnd = *p.EndDate
	}
	if end != nil {
		finalEnd = *end
	}

	var blocks []Timeblock
	for current := start; !current.After(finalEnd); current = p.Next(current) {
		if !p.ShouldOccurOn(current) {
			continue
		}
		blocks = append(blocks, Timeblock{
			Start: combine(current, base.Start),
			End:   combine(current, base.End),
		})
	}
	return blocks, nil
}

// combine keeps the calendar date of date and the wall-clock time of clock.
func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
