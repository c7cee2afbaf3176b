// Package genericparse is the pluggable fallback layer: best-effort,
// per-language chronological parsers consulted only after every structured
// matcher has declined an input.
//
// A Candidate records how much of the input a parser consumed and which
// calendar fields the text stated explicitly versus inherited from the
// reference instant. The engine ranks candidates by consumed span length:
// the parser that understood the most input wins.
package genericparse

import (
	"log/slog"
	"time"
)

// Fields is a bitmask of calendar fields that were explicitly present in
// the input rather than inferred from the reference time.
type Fields uint8

const (
	FieldYear Fields = 1 << iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
)

// HasClock reports whether the hour or minute field was explicit.
func (f Fields) HasClock() bool {
	return f&(FieldHour|FieldMinute) != 0
}

// String returns a compact debug form, e.g. "YMD" or "hm".
func (f Fields) String() string {
	var b []byte
	if f&FieldYear != 0 {
		b = append(b, 'Y')
	}
	if f&FieldMonth != 0 {
		b = append(b, 'M')
	}
	if f&FieldDay != 0 {
		b = append(b, 'D')
	}
	if f&FieldHour != 0 {
		b = append(b, 'h')
	}
	if f&FieldMinute != 0 {
		b = append(b, 'm')
	}
	if len(b) == 0 {
		return "none"
	}
	return string(b)
}

// Options carries the hints the engine passes through to pool members.
// Parsers that cannot honor a hint ignore it.
type Options struct {
	// WeekStart is the caller's week-start weekday.
	WeekStart time.Weekday
	// ForwardBias forces ambiguous expressions to resolve forward in time.
	ForwardBias bool
}

// Candidate is one parse produced by a pool member.
type Candidate struct {
	// Text is the consumed portion of the input.
	Text string
	// Index is the byte offset of Text within the input.
	Index int
	// Time is the resolved instant.
	Time time.Time
	// Certain marks the calendar fields stated explicitly in Text.
	Certain Fields
}

// Span is the consumed-text length used for ranking.
func (c Candidate) Span() int {
	return len(c.Text)
}

// Parser is one pool member. Implementations must be stateless across
// calls so a pool can be shared within one engine instance.
type Parser interface {
	// Language returns the language code this member parses.
	Language() string
	// Parse returns zero or more candidates for text against ref, best
	// first by the parser's own ranking.
	Parse(text string, ref time.Time, opts Options) ([]Candidate, error)
}

// Pool holds one parser per enabled language that the fallback backend
// supports. Construction never fails: unsupported languages are logged
// and omitted, and an empty pool simply never produces candidates.
type Pool struct {
	parsers []Parser
	log     *slog.Logger
}

// NewPool builds the default pool for the given languages, in order.
func NewPool(languages []string, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}

	p := &Pool{log: log}
	for _, lang := range languages {
		member, ok := newWhenParser(lang)
		if !ok {
			log.Warn("no fallback parser rules for language, omitting from pool", "language", lang)
			continue
		}
		p.parsers = append(p.parsers, member)
	}
	return p
}

// NewPoolFrom wraps caller-supplied parsers, mainly for tests and for
// swapping in a different fallback backend.
func NewPoolFrom(parsers ...Parser) *Pool {
	return &Pool{parsers: parsers, log: slog.Default()}
}

// Size returns the number of usable pool members.
func (p *Pool) Size() int {
	return len(p.parsers)
}

// Parse runs every member against text and returns each member's first
// candidate, in enabled-language order. Member errors are logged and
// treated as "no candidates" — fallback parsing never propagates errors.
func (p *Pool) Parse(text string, ref time.Time, opts Options) []Candidate {
	var out []Candidate
	for _, member := range p.parsers {
		cands, err := member.Parse(text, ref, opts)
		if err != nil {
			p.log.Debug("fallback parser error", "language", member.Language(), "error", err)
			continue
		}
		if len(cands) > 0 {
			out = append(out, cands[0])
		}
	}
	return out
}

// Best returns the candidate with the longest consumed span across all
// members. Ties keep the earliest language in declaration order. The span
// heuristic is deliberate: do not replace it with a confidence score.
func (p *Pool) Best(text string, ref time.Time, opts Options) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range p.Parse(text, ref, opts) {
		if !found || c.Span() > best.Span() {
			best = c
			found = true
		}
	}
	return best, found
}
