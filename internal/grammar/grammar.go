// Package grammar compiles the enabled language set into the matchers and
// keyword tables the resolution engine runs against.
//
// Compilation is a pure function of the ordered language list: the same
// languages always yield the same matchers. Matchers are built by escaping
// and alternating every lexicon variant across every enabled language, so
// a single engine understands "in 2 weeks", "dans 2 semaines" and
// "in 2 wochen" with one pattern. Go's RE2 engine keeps matching linear
// even as the alternation groups grow with more languages.
package grammar

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Amato21/nldates-revived-sub000/internal/lexicon"
	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

// Immediate identifies one of the exact-match immediate keywords.
type Immediate int

const (
	ImmediateNow Immediate = iota
	ImmediateToday
	ImmediateTomorrow
	ImmediateYesterday
)

// Direction is the week offset a prefix keyword implies: 0 for "this",
// +1 for "next", -1 for "last".
type Direction int

const (
	DirectionThis Direction = 0
	DirectionNext Direction = 1
	DirectionLast Direction = -1
)

// word matches one natural-language token: letters plus the hyphens and
// apostrophes that appear in weekday names like "segunda-feira".
const word = `[\p{L}][\p{L}\-']*`

// Grammar is the compiled form of an enabled language set. It is immutable
// after Compile and owned by exactly one engine instance.
type Grammar struct {
	Languages []string

	// Keyword sets. Keys are lower-cased surface forms; when two enabled
	// languages share a surface form, the first language in declaration
	// order wins, which keeps lookups deterministic.
	Immediates map[string]Immediate
	Prefixes   map[string]Direction
	Units      map[string]types.Unit
	Weekdays   map[string]time.Weekday

	// Noun sets for the "next <noun>" fallback shortcut.
	WeekWords  map[string]struct{}
	MonthWords map[string]struct{}
	YearWords  map[string]struct{}

	// Composite matchers. All are anchored full-string matches over
	// normalized (lower-cased, single-spaced) input. The weekday capture
	// groups of WeekdayTime and WeekdaySimple are built from the compiled
	// weekday table, not a generic word class: "next month" must fall
	// through to the noun shortcut instead of hitting the weekday layers.
	DurationCombo  *regexp.Regexp // in N <unit> and M <unit>
	DurationSimple *regexp.Regexp // in N <unit>
	WeekdayTime    *regexp.Regexp // <prefix> <weekday> at <time phrase>
	WeekdaySimple  *regexp.Regexp // <prefix> <weekday>
	DateRange      *regexp.Regexp // from <weekday> to <weekday>
	NextWeek       *regexp.Regexp // <next> <week>
	NextNoun       *regexp.Regexp // unanchored skim: <next> <word>
}

// Compile builds the grammar for the given languages. Languages without a
// lexicon must be filtered out by the caller beforehand; Compile fails only
// when the lexicon is missing structural entries even in the default
// language.
func Compile(lex *lexicon.Provider, languages []string) (*Grammar, error) {
	g := &Grammar{
		Languages:  append([]string(nil), languages...),
		Immediates: make(map[string]Immediate),
		Prefixes:   make(map[string]Direction),
		Units:      make(map[string]types.Unit),
		Weekdays:   make(map[string]time.Weekday),
		WeekWords:  make(map[string]struct{}),
		MonthWords: make(map[string]struct{}),
		YearWords:  make(map[string]struct{}),
	}

	g.collectKeywords(lex)

	weekdayAlt := weekdayAlternation(g.Weekdays)
	inAlt := alternation(lex, languages, "in")
	andAlt := alternation(lex, languages, "and")
	atAlt := alternation(lex, languages, "at")
	fromAlt := alternation(lex, languages, "from")
	toAlt := alternation(lex, languages, "to")
	nextAlt := alternation(lex, languages, "next")
	weekAlt := alternation(lex, languages, "week")
	prefixAlt := alternation(lex, languages, "this", "next", "last")

	for name, alt := range map[string]string{
		"in": inAlt, "and": andAlt, "at": atAlt, "from": fromAlt,
		"to": toAlt, "next": nextAlt, "week": weekAlt, "prefix": prefixAlt,
	} {
		if alt == "" {
			return nil, fmt.Errorf("lexicon has no %q entry in any of %v", name, languages)
		}
	}

	var err error
	compile := func(expr string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		re, cErr := regexp.Compile(expr)
		if cErr != nil {
			err = fmt.Errorf("compiling grammar for %v: %w", languages, cErr)
		}
		return re
	}

	g.DurationCombo = compile(`^(?:` + inAlt + `)\s+(\d+)\s+(` + word + `)\s+(?:` + andAlt + `)\s+(\d+)\s+(` + word + `)$`)
	g.DurationSimple = compile(`^(?:` + inAlt + `)\s+(\d+)\s+(` + word + `)$`)
	g.WeekdayTime = compile(`^(` + prefixAlt + `)\s+(` + weekdayAlt + `)\s+(?:` + atAlt + `)\s+(.+)$`)
	g.WeekdaySimple = compile(`^(` + prefixAlt + `)\s+(` + weekdayAlt + `)$`)
	g.DateRange = compile(`^(?:` + fromAlt + `)\s+(` + word + `)\s+(?:` + toAlt + `)\s+(` + word + `)$`)
	g.NextWeek = compile(`^(?:` + nextAlt + `)\s+(?:` + weekAlt + `)$`)
	g.NextNoun = compile(`(?:^|\s)(?:` + nextAlt + `)\s+(` + word + `)`)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// collectKeywords fills the exact-match keyword sets across all enabled
// languages, first language wins on collisions.
func (g *Grammar) collectKeywords(lex *lexicon.Provider) {
	immediates := map[string]Immediate{
		"now":       ImmediateNow,
		"today":     ImmediateToday,
		"tomorrow":  ImmediateTomorrow,
		"yesterday": ImmediateYesterday,
	}
	prefixes := map[string]Direction{
		"this": DirectionThis,
		"next": DirectionNext,
		"last": DirectionLast,
	}
	units := map[string]types.Unit{
		"minutes": types.UnitMinutes,
		"hours":   types.UnitHours,
		"days":    types.UnitDays,
		"weeks":   types.UnitWeeks,
		"months":  types.UnitMonths,
		"years":   types.UnitYears,
	}

	// English weekday names and abbreviations are always understood,
	// regardless of the enabled set.
	for name, wd := range builtinWeekdays {
		g.Weekdays[name] = wd
	}

	for _, lang := range g.Languages {
		for key, kind := range immediates {
			for _, v := range lex.Variants(key, lang) {
				if _, exists := g.Immediates[v]; !exists {
					g.Immediates[v] = kind
				}
			}
		}
		for key, dir := range prefixes {
			for _, v := range lex.Variants(key, lang) {
				if _, exists := g.Prefixes[v]; !exists {
					g.Prefixes[v] = dir
				}
			}
		}
		for key, unit := range units {
			for _, v := range lex.Variants(key, lang) {
				if _, exists := g.Units[v]; !exists {
					g.Units[v] = unit
				}
			}
		}
		for i, key := range lexicon.WeekdayKeys {
			wd := time.Weekday((i + 1) % 7) // monday..sunday -> Monday..Sunday
			for _, v := range lex.Variants(key, lang) {
				if _, exists := g.Weekdays[v]; !exists {
					g.Weekdays[v] = wd
				}
			}
		}

		addAll(g.WeekWords, lex.Variants("week", lang), lex.Variants("weeks", lang))
		addAll(g.MonthWords, lex.Variants("month", lang), lex.Variants("months", lang))
		addAll(g.YearWords, lex.Variants("year", lang), lex.Variants("years", lang))
	}
}

// ResolveUnit maps a surface-form token to a canonical unit. Tokens missing
// from the compiled unit map fall back to a prefix heuristic so near-miss
// spellings still resolve ("wks", "jrs"). The "min" and "mo" checks must
// run before the single-letter ones they share a first letter with.
func (g *Grammar) ResolveUnit(tok string) (types.Unit, bool) {
	if u, ok := g.Units[tok]; ok {
		return u, true
	}
	switch {
	case strings.HasPrefix(tok, "min"):
		return types.UnitMinutes, true
	case strings.HasPrefix(tok, "mo"):
		return types.UnitMonths, true
	case strings.HasPrefix(tok, "h"):
		return types.UnitHours, true
	case strings.HasPrefix(tok, "d"), strings.HasPrefix(tok, "j"):
		return types.UnitDays, true
	case strings.HasPrefix(tok, "w"), strings.HasPrefix(tok, "s"):
		return types.UnitWeeks, true
	case strings.HasPrefix(tok, "y"), strings.HasPrefix(tok, "a"):
		return types.UnitYears, true
	case strings.HasPrefix(tok, "m"):
		return types.UnitMonths, true
	default:
		return 0, false
	}
}

// Weekday resolves a weekday surface form to its index. Unknown names
// default to Sunday with ok=false so the caller can surface the default.
func (g *Grammar) Weekday(name string) (time.Weekday, bool) {
	if wd, ok := g.Weekdays[strings.ToLower(name)]; ok {
		return wd, true
	}
	return time.Sunday, false
}

// IsWeekWord reports whether tok names the week concept in any enabled
// language.
func (g *Grammar) IsWeekWord(tok string) bool {
	_, ok := g.WeekWords[tok]
	return ok
}

// IsMonthWord reports whether tok names the month concept.
func (g *Grammar) IsMonthWord(tok string) bool {
	_, ok := g.MonthWords[tok]
	return ok
}

// IsYearWord reports whether tok names the year concept.
func (g *Grammar) IsYearWord(tok string) bool {
	_, ok := g.YearWords[tok]
	return ok
}

// builtinWeekdays is the always-on English weekday table.
var builtinWeekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// alternation gathers every variant of the given keys across languages,
// deduplicates, escapes, and joins them longest-first so shorter variants
// cannot shadow longer ones that share a prefix.
func alternation(lex *lexicon.Provider, languages []string, keys ...string) string {
	seen := make(map[string]struct{})
	var variants []string
	for _, lang := range languages {
		for _, key := range keys {
			for _, v := range lex.Variants(key, lang) {
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				variants = append(variants, v)
			}
		}
	}
	return joinAlternation(variants)
}

// weekdayAlternation builds the weekday capture group from the compiled
// weekday table, so the weekday matchers accept exactly the names the
// table can resolve.
func weekdayAlternation(weekdays map[string]time.Weekday) string {
	names := make([]string, 0, len(weekdays))
	for name := range weekdays {
		names = append(names, name)
	}
	return joinAlternation(names)
}

// joinAlternation escapes and joins variants longest-first so shorter
// variants cannot shadow longer ones that share a prefix.
func joinAlternation(variants []string) string {
	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) > len(variants[j])
		}
		return variants[i] < variants[j]
	})

	escaped := make([]string, len(variants))
	for i, v := range variants {
		escaped[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(escaped, "|")
}

func addAll(set map[string]struct{}, lists ...[]string) {
	for _, list := range lists {
		for _, v := range list {
			set[v] = struct{}{}
		}
	}
}
