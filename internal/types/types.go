// Package types defines the value objects shared by the resolution engine
// and its callers: resolved dates, resolved ranges, week-start preferences,
// and the canonical duration units.
package types

import (
	"strings"
	"time"
)

// Unit is one of the six canonical duration units a relative expression
// can resolve to.
type Unit int

const (
	UnitMinutes Unit = iota
	UnitHours
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
)

var unitNames = [...]string{
	UnitMinutes: "minutes",
	UnitHours:   "hours",
	UnitDays:    "days",
	UnitWeeks:   "weeks",
	UnitMonths:  "months",
	UnitYears:   "years",
}

// String returns the canonical English name of the unit.
func (u Unit) String() string {
	if int(u) >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "unknown"
}

// Clockish reports whether the unit implies a time-of-day component.
// Minutes and hours do; days and coarser never do.
func (u Unit) Clockish() bool {
	return u == UnitMinutes || u == UnitHours
}

// Apply adds n of the unit to base. Calendar units go through AddDate so
// month arithmetic follows calendar rules rather than fixed durations.
func (u Unit) Apply(base time.Time, n int) time.Time {
	switch u {
	case UnitMinutes:
		return base.Add(time.Duration(n) * time.Minute)
	case UnitHours:
		return base.Add(time.Duration(n) * time.Hour)
	case UnitDays:
		return base.AddDate(0, 0, n)
	case UnitWeeks:
		return base.AddDate(0, 0, n*7)
	case UnitMonths:
		return base.AddDate(0, n, 0)
	case UnitYears:
		return base.AddDate(n, 0, 0)
	default:
		return base
	}
}

// WeekStart is the caller's week-start preference. Values 0..6 are concrete
// weekdays (Sunday..Saturday, matching time.Weekday); WeekStartDefault
// defers to the engine default.
type WeekStart int

// WeekStartDefault means "use the default week start" (Sunday).
const WeekStartDefault WeekStart = -1

var weekStartNames = map[string]WeekStart{
	"sunday":    WeekStart(time.Sunday),
	"monday":    WeekStart(time.Monday),
	"tuesday":   WeekStart(time.Tuesday),
	"wednesday": WeekStart(time.Wednesday),
	"thursday":  WeekStart(time.Thursday),
	"friday":    WeekStart(time.Friday),
	"saturday":  WeekStart(time.Saturday),
}

// ParseWeekStart maps an English weekday name to a WeekStart. Anything
// unrecognized (including "" and "locale") yields WeekStartDefault.
func ParseWeekStart(name string) WeekStart {
	if ws, ok := weekStartNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ws
	}
	return WeekStartDefault
}

// Weekday resolves the preference to a concrete weekday for calendar
// arithmetic. The default sentinel resolves to Sunday.
func (w WeekStart) Weekday() time.Weekday {
	if w < 0 || w > 6 {
		return time.Sunday
	}
	return time.Weekday(w)
}

// ResolvedDate is the result of resolving a single-date expression.
// Go's time.Time carries both the absolute instant and the calendar-aware
// view, so one field serves as both.
type ResolvedDate struct {
	// Formatted is Time rendered with the engine's caller-supplied layout.
	Formatted string
	// Time is the resolved instant in the engine's location.
	Time time.Time
	// HasClock reports whether a time-of-day was specified or implied by
	// the input, as opposed to the normalized start-of-day default.
	HasClock bool
}

// ResolvedRange is the result of resolving a range expression. Start and
// End are inclusive day-granularity bounds; Days lists every day the range
// spans, start to end inclusive.
type ResolvedRange struct {
	Formatted string
	Start     time.Time
	End       time.Time
	Days      []time.Time
}

// DayCount returns the inclusive number of days the range spans.
func (r *ResolvedRange) DayCount() int {
	return len(r.Days)
}
