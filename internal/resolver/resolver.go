// Package resolver implements the layered resolution engine that turns
// free-form, multilingual natural-language time expressions into concrete
// dates and ranges.
//
// Resolution follows a fixed layering, cheapest and most precise first:
//
//  1. Immediate keywords (now, today, tomorrow, yesterday)
//  2. Relative duration combinations ("in 2 weeks and 3 days")
//  3. Simple relative durations ("in 2 minutes")
//  4. Range-shaped input, start date only ("from monday to friday")
//  5. Weekday with a time ("next monday at 3pm")
//  6. Bare prefixed weekday ("next monday")
//  7. Absolute timestamps ("2024-03-15", RFC3339)
//  8. The generic parser pool, longest consumed span wins
//
// The first full match wins. Unresolvable input degrades to "today";
// resolution never returns an error.
package resolver

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Amato21/nldates-revived-sub000/internal/genericparse"
	"github.com/Amato21/nldates-revived-sub000/internal/grammar"
	"github.com/Amato21/nldates-revived-sub000/internal/lexicon"
	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

const (
	defaultDateLayout     = "2006-01-02"
	defaultDateTimeLayout = "2006-01-02 15:04"
)

// Engine resolves natural-language time expressions against a compiled
// grammar for one fixed set of enabled languages. An engine is safe for
// concurrent use: the grammar and pool are immutable after construction
// (Recompile swaps them and must not race with in-flight calls).
type Engine struct {
	languages []string
	lex       *lexicon.Provider
	grammar   *grammar.Grammar
	pool      *genericparse.Pool

	// poolOverride pins an injected pool across Recompile.
	poolOverride *genericparse.Pool

	now func() time.Time
	log *slog.Logger

	dateLayout     string
	dateTimeLayout string

	fellBack bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the reference-time source, used by tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithDateFormat sets the layout used for date-only results.
func WithDateFormat(layout string) Option {
	return func(e *Engine) { e.dateLayout = layout }
}

// WithDateTimeFormat sets the layout used for time-bearing results.
func WithDateTimeFormat(layout string) Option {
	return func(e *Engine) { e.dateTimeLayout = layout }
}

// WithLexicon injects a lexicon provider, letting tests or embedders share
// one warm translation cache across engines.
func WithLexicon(lex *lexicon.Provider) Option {
	return func(e *Engine) { e.lex = lex }
}

// WithPool injects a generic parser pool, replacing the default backend.
// The injected pool survives Recompile.
func WithPool(pool *genericparse.Pool) Option {
	return func(e *Engine) { e.poolOverride = pool }
}

// New builds an engine for the ordered language set. Languages without a
// lexicon are dropped with a warning; if none survive, the engine falls
// back to English and FellBack reports it. New fails only when even the
// fallback cannot be compiled.
func New(languages []string, opts ...Option) (*Engine, error) {
	e := &Engine{
		now:            time.Now,
		log:            slog.Default(),
		dateLayout:     defaultDateLayout,
		dateTimeLayout: defaultDateTimeLayout,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.lex == nil {
		lex, err := lexicon.NewProvider(e.log)
		if err != nil {
			return nil, fmt.Errorf("building lexicon: %w", err)
		}
		e.lex = lex
	}

	if err := e.Recompile(languages); err != nil {
		return nil, err
	}
	return e, nil
}

// Recompile rebuilds the grammar and parser pool for a new language set.
// Same fallback contract as New.
func (e *Engine) Recompile(languages []string) error {
	usable := make([]string, 0, len(languages))
	for _, lang := range languages {
		norm := lexicon.Normalize(lang)
		if !lexicon.Supported(norm) {
			e.log.Warn("unsupported language, omitting from grammar", "language", lang)
			continue
		}
		usable = append(usable, norm)
	}

	fellBack := false
	if len(usable) == 0 {
		e.log.Warn("no usable languages requested, falling back to default",
			"requested", languages, "fallback", lexicon.DefaultLanguage)
		usable = []string{lexicon.DefaultLanguage}
		fellBack = true
	}

	g, err := grammar.Compile(e.lex, usable)
	if err != nil && !fellBack {
		e.log.Warn("grammar compilation failed, falling back to default",
			"languages", usable, "error", err)
		usable = []string{lexicon.DefaultLanguage}
		fellBack = true
		g, err = grammar.Compile(e.lex, usable)
	}
	if err != nil {
		return fmt.Errorf("compiling grammar: %w", err)
	}

	e.languages = usable
	e.grammar = g
	if e.poolOverride != nil {
		e.pool = e.poolOverride
	} else {
		e.pool = genericparse.NewPool(usable, e.log)
	}
	e.fellBack = fellBack
	return nil
}

// Languages returns the compiled language set, in declaration order.
func (e *Engine) Languages() []string {
	return append([]string(nil), e.languages...)
}

// FellBack reports whether construction had to discard the requested
// languages and compile the default instead.
func (e *Engine) FellBack() bool {
	return e.fellBack
}

// Resolve interprets text as a single date. Unrecognized input resolves to
// today; Resolve never fails.
func (e *Engine) Resolve(text string, ws types.WeekStart) types.ResolvedDate {
	now := e.now()
	norm := normalize(text)
	weekStart := ws.Weekday()

	// Layer 1: immediate keywords, exact match in any enabled language.
	if kind, ok := e.grammar.Immediates[norm]; ok {
		switch kind {
		case grammar.ImmediateNow:
			return e.dated(now, true)
		case grammar.ImmediateToday:
			return e.dated(startOfDay(now), false)
		case grammar.ImmediateTomorrow:
			return e.dated(startOfDay(now).AddDate(0, 0, 1), false)
		case grammar.ImmediateYesterday:
			return e.dated(startOfDay(now).AddDate(0, 0, -1), false)
		}
	}

	// Layer 2: "in N <unit> and M <unit>".
	if m := e.grammar.DurationCombo.FindStringSubmatch(norm); m != nil {
		if d, ok := e.applyDurations(now, m[1], m[2], m[3], m[4]); ok {
			return d
		}
	}

	// Layer 3: "in N <unit>".
	if m := e.grammar.DurationSimple.FindStringSubmatch(norm); m != nil {
		if d, ok := e.applyDurations(now, m[1], m[2], "", ""); ok {
			return d
		}
	}

	// Layer 4: range-shaped input resolves to its start date. Full range
	// resolution is ResolveRange; this keeps the single-date API sensible
	// for range input.
	if m := e.grammar.DateRange.FindStringSubmatch(norm); m != nil {
		start := nextOnOrAfter(startOfDay(now), e.weekdayIndex(m[1]))
		return e.dated(start, false)
	}

	// Layer 5: "<prefix> <weekday> at <time>".
	if m := e.grammar.WeekdayTime.FindStringSubmatch(norm); m != nil {
		date := e.prefixedWeekday(now, m[1], m[2], weekStart)
		if t, ok := e.delegateTime(m[3], date, weekStart); ok {
			return e.dated(t, true)
		}
		return e.dated(date, false)
	}

	// Layer 6: "<prefix> <weekday>".
	if m := e.grammar.WeekdaySimple.FindStringSubmatch(norm); m != nil {
		return e.dated(e.prefixedWeekday(now, m[1], m[2], weekStart), false)
	}

	// Layer 7: absolute timestamps. Only digit-led input can be one, so
	// natural-language text never reaches dateparse.
	if startsWithDigit(norm) {
		if t, err := dateparse.ParseIn(norm, now.Location()); err == nil {
			return e.dated(t, t.Hour() != 0 || t.Minute() != 0)
		}
	}

	// Layer 8: generic fallback. "next month"/"next year" are special-cased
	// lexically before the pool runs; "next week" is a range, not a point,
	// and is left for ResolveRange.
	if d, ok := e.nextNounShortcut(now, norm); ok {
		return d
	}
	opts := genericparse.Options{WeekStart: weekStart, ForwardBias: true}
	if best, ok := e.pool.Best(norm, now, opts); ok {
		if best.Certain.HasClock() {
			return e.dated(best.Time, true)
		}
		return e.dated(startOfDay(best.Time), false)
	}

	// Terminal fallback: the engine never errors; unresolvable text is today.
	return e.dated(startOfDay(now), false)
}

// applyDurations resolves one or two (count, unit) pairs against now. The
// second pair is optional. A pair whose unit cannot be resolved fails the
// whole layer so the input can fall through to the generic parser.
func (e *Engine) applyDurations(now time.Time, n1, u1, n2, u2 string) (types.ResolvedDate, bool) {
	result := now
	clockish := false

	pairs := [][2]string{{n1, u1}}
	if n2 != "" {
		pairs = append(pairs, [2]string{n2, u2})
	}
	for _, pair := range pairs {
		n, err := strconv.Atoi(pair[0])
		if err != nil {
			return types.ResolvedDate{}, false
		}
		unit, ok := e.grammar.ResolveUnit(pair[1])
		if !ok {
			return types.ResolvedDate{}, false
		}
		result = unit.Apply(result, n)
		clockish = clockish || unit.Clockish()
	}

	if !clockish {
		result = startOfDay(result)
	}
	return e.dated(result, clockish), true
}

// prefixedWeekday resolves "<prefix> <weekday>": this keeps the current
// week, next adds one week, last subtracts one, then the weekday is set
// within that week honoring the week-start preference.
func (e *Engine) prefixedWeekday(now time.Time, prefix, weekdayName string, weekStart time.Weekday) time.Time {
	dir := e.grammar.Prefixes[prefix]
	wd := e.weekdayIndex(weekdayName)
	base := startOfDay(now).AddDate(0, 0, 7*int(dir))
	return setWeekday(base, wd, weekStart)
}

// weekdayIndex resolves a weekday name across all enabled languages. The
// Sunday default for unknown names is deliberate and value-preserving; the
// warning makes it observable so typos and missing translations surface.
func (e *Engine) weekdayIndex(name string) time.Weekday {
	wd, ok := e.grammar.Weekday(name)
	if !ok {
		e.log.Warn("unknown weekday name, defaulting to sunday", "name", name)
	}
	return wd
}

// delegateTime hands the trailing time phrase of a weekday-with-time match
// to the parser pool, with the resolved date as the reference. A phrase the
// pool cannot read keeps the date-only result.
func (e *Engine) delegateTime(phrase string, date time.Time, weekStart time.Weekday) (time.Time, bool) {
	opts := genericparse.Options{WeekStart: weekStart, ForwardBias: false}
	var best genericparse.Candidate
	found := false
	for _, c := range e.pool.Parse(phrase, date, opts) {
		if !c.Certain.HasClock() {
			continue
		}
		if !found || c.Span() > best.Span() {
			best = c
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return best.Time, true
}

// nextNounShortcut handles "next month" and "next year" ahead of the
// generic parsers: first day of next month, or next January 1st. The noun
// is matched against the compiled month/year keyword sets, not a raw
// substring, and week nouns are skipped so ResolveRange owns "next week".
func (e *Engine) nextNounShortcut(now time.Time, norm string) (types.ResolvedDate, bool) {
	m := e.grammar.NextNoun.FindStringSubmatch(norm)
	if m == nil {
		return types.ResolvedDate{}, false
	}
	noun := m[1]
	switch {
	case e.grammar.IsWeekWord(noun):
		return types.ResolvedDate{}, false
	case e.grammar.IsMonthWord(noun):
		first := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		return e.dated(first, false), true
	case e.grammar.IsYearWord(noun):
		first := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
		return e.dated(first, false), true
	default:
		return types.ResolvedDate{}, false
	}
}

func (e *Engine) dated(t time.Time, hasClock bool) types.ResolvedDate {
	layout := e.dateLayout
	if hasClock {
		layout = e.dateTimeLayout
	}
	return types.ResolvedDate{
		Formatted: t.Format(layout),
		Time:      t,
		HasClock:  hasClock,
	}
}

// normalize lower-cases and collapses runs of whitespace. Callers may have
// trimmed already; normalizing again is harmless.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// setWeekday moves t to the given weekday within t's week, where weeks
// begin on weekStart.
func setWeekday(t time.Time, wd, weekStart time.Weekday) time.Time {
	begin := weekBegin(t, weekStart)
	offset := (int(wd) - int(weekStart) + 7) % 7
	return begin.AddDate(0, 0, offset)
}

// weekBegin returns the first day of t's week.
func weekBegin(t time.Time, weekStart time.Weekday) time.Time {
	delta := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return startOfDay(t).AddDate(0, 0, -delta)
}

// nextOnOrAfter returns the next occurrence of wd on or after t: if t
// already falls on wd, t itself.
func nextOnOrAfter(t time.Time, wd time.Weekday) time.Time {
	diff := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, diff)
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
