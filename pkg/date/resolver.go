package date

import (
	"fmt"
	"time"
)

// Resolver resolves parsed expressions against the current time.
type Resolver struct {
	// Now returns the base instant. Tests replace it.
	Now func() time.Time
}

// NewResolver creates a resolver using the wall clock.
func NewResolver() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve returns midnight of the resolved day in loc. Weeks start on Monday;
// "this/next/last week" resolve to that Monday and the month names to the
// first day of the month.
func (r *Resolver) Resolve(expr Expression, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}
	y, m, d := now().In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if expr.IsNamed() {
		return resolveNamed(expr.Name, today)
	}

	if expr.Unit == "" || expr.Direction == "" {
		return time.Time{}, fmt.Errorf("%w: missing unit or direction for relative date", ErrResolution)
	}

	amount := expr.Amount
	switch expr.Direction {
	case Future:
	case Past:
		amount = -amount
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported direction %q", ErrResolution, expr.Direction)
	}

	switch expr.Unit {
	case Day:
		return today.AddDate(0, 0, amount), nil
	case Week:
		return today.AddDate(0, 0, 7*amount), nil
	case Month:
		return addMonths(today, amount), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported unit %q", ErrResolution, expr.Unit)
	}
}

func resolveNamed(name string, today time.Time) (time.Time, error) {
	switch name {
	case Today:
		return today, nil
	case Tomorrow:
		return today.AddDate(0, 0, 1), nil
	case Yesterday:
		return today.AddDate(0, 0, -1), nil
	case ThisWeek:
		return startOfWeek(today), nil
	case NextWeek:
		return startOfWeek(today).AddDate(0, 0, 7), nil
	case LastWeek:
		return startOfWeek(today).AddDate(0, 0, -7), nil
	case ThisMonth:
		return startOfMonth(today, 0), nil
	case NextMonth:
		return startOfMonth(today, 1), nil
	case LastMonth:
		return startOfMonth(today, -1), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported relative date value %q", ErrResolution, name)
	}
}

func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time, months int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
}

// addMonths moves by calendar months, clamping the day to the end of a
// shorter target month (Jan 31 + 1 month = Feb 28).
func addMonths(t time.Time, months int) time.Time {
	first := startOfMonth(t, months)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
