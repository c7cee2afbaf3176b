package resolver

import (
	"time"

	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

// ResolveRange interprets text as a date range. It recognizes exactly two
// shapes: "from <weekday> to <weekday>" and "<next> <week>". Anything else
// returns nil; callers then try Resolve for a single date. This is an
// independent entry point, not a fallback layer of Resolve.
func (e *Engine) ResolveRange(text string, ws types.WeekStart) *types.ResolvedRange {
	now := e.now()
	norm := normalize(text)
	today := startOfDay(now)

	if m := e.grammar.DateRange.FindStringSubmatch(norm); m != nil {
		start := nextOnOrAfter(today, e.weekdayIndex(m[1]))
		end := nextOnOrAfter(start, e.weekdayIndex(m[2]))
		// nextOnOrAfter already guarantees end >= start, but the roll-forward
		// is applied up to twice anyway so the start <= end invariant holds
		// even if the weekday table ever produces a boundary surprise.
		for i := 0; i < 2 && end.Before(start); i++ {
			end = end.AddDate(0, 0, 7)
		}
		return e.ranged(start, end)
	}

	if e.grammar.NextWeek.MatchString(norm) {
		start := weekBegin(today, ws.Weekday()).AddDate(0, 0, 7)
		end := start.AddDate(0, 0, 6)
		return e.ranged(start, end)
	}

	return nil
}

// ranged builds the inclusive day list between start and end.
func (e *Engine) ranged(start, end time.Time) *types.ResolvedRange {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return &types.ResolvedRange{
		Formatted: start.Format(e.dateLayout) + " - " + end.Format(e.dateLayout),
		Start:     start,
		End:       end,
		Days:      days,
	}
}
