package resolver

import (
	"github.com/araddon/dateparse"

	"github.com/Amato21/nldates-revived-sub000/internal/genericparse"
	"github.com/Amato21/nldates-revived-sub000/internal/grammar"
	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

// HasTime reports whether text specifies a clock time rather than only a
// calendar date. It runs a distinct decision list over the same compiled
// grammar as Resolve; every matched step is terminal, not a fallthrough.
func (e *Engine) HasTime(text string) bool {
	norm := normalize(text)

	// "now" is time-bearing by definition.
	if kind, ok := e.grammar.Immediates[norm]; ok && kind == grammar.ImmediateNow {
		return true
	}

	// Durations carry a time only when a unit is minutes or hours; days
	// and coarser are explicitly date-only, even for combined forms.
	if m := e.grammar.DurationCombo.FindStringSubmatch(norm); m != nil {
		return e.clockishUnit(m[2]) || e.clockishUnit(m[4])
	}
	if m := e.grammar.DurationSimple.FindStringSubmatch(norm); m != nil {
		return e.clockishUnit(m[2])
	}

	if e.grammar.WeekdayTime.MatchString(norm) {
		return true
	}
	// A bare weekday never implies a clock time, whatever a fallback
	// parser might infer for it.
	if e.grammar.WeekdaySimple.MatchString(norm) {
		return false
	}

	// today/tomorrow/yesterday are date-only.
	if _, ok := e.grammar.Immediates[norm]; ok {
		return false
	}

	// Absolute timestamps carry a clock exactly when they state one.
	// Mirrors the digit-led guard of the resolve path so both operations
	// read the same inputs the same way.
	if startsWithDigit(norm) {
		if t, err := dateparse.ParseIn(norm, e.now().Location()); err == nil {
			return t.Hour() != 0 || t.Minute() != 0
		}
	}

	// Delegate: true iff any language's parse found an explicit hour or
	// minute in the text, as opposed to one inherited from the reference.
	opts := genericparse.Options{WeekStart: types.WeekStartDefault.Weekday(), ForwardBias: true}
	for _, c := range e.pool.Parse(norm, e.now(), opts) {
		if c.Certain.HasClock() {
			return true
		}
	}
	return false
}

func (e *Engine) clockishUnit(tok string) bool {
	unit, ok := e.grammar.ResolveUnit(tok)
	return ok && unit.Clockish()
}
