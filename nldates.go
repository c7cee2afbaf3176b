// Package nldates resolves free-form, multilingual natural-language time
// expressions ("in 2 weeks and 3 days", "next monday at 3pm", "de lundi à
// vendredi") into concrete dates, date ranges, and a signal of whether a
// clock time was specified.
//
// The package exports only the essential types and the engine constructor;
// the layered resolution strategy, grammar compilation, and the fallback
// parser pool live in internal packages.
package nldates

import (
	"github.com/Amato21/nldates-revived-sub000/internal/resolver"
	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

// Core value types.
type (
	ResolvedDate  = types.ResolvedDate
	ResolvedRange = types.ResolvedRange
	WeekStart     = types.WeekStart
	Unit          = types.Unit
)

// Week-start preference: a concrete weekday, or the default sentinel.
const WeekStartDefault = types.WeekStartDefault

// ParseWeekStart maps an English weekday name to a WeekStart preference.
func ParseWeekStart(name string) WeekStart {
	return types.ParseWeekStart(name)
}

// Engine is the resolution engine for one fixed set of enabled languages.
// All operations are pure, synchronous, in-memory computations.
type Engine = resolver.Engine

// Option configures an Engine at construction time.
type Option = resolver.Option

// Engine options.
var (
	WithClock          = resolver.WithClock
	WithLogger         = resolver.WithLogger
	WithDateFormat     = resolver.WithDateFormat
	WithDateTimeFormat = resolver.WithDateTimeFormat
)

// New builds an engine for the ordered language set, e.g.
//
//	eng, err := nldates.New([]string{"en", "fr", "de"})
//
// Languages without a built-in lexicon are omitted with a warning. If none
// survive, the engine compiles English instead and Engine.FellBack reports
// it; New returns an error only when even that fallback cannot be built.
func New(languages []string, opts ...Option) (*Engine, error) {
	return resolver.New(languages, opts...)
}
