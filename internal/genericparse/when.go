package genericparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/br"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/nl"
	"github.com/olebedev/when/rules/ru"
	"github.com/olebedev/when/rules/zh"
	"github.com/tj/go-naturaldate"
)

// casualRules maps a language code to the "casual" rule set of the when
// library. Portuguese reuses the Brazilian rules.
func casualRules(lang string) ([]rules.Rule, bool) {
	switch lang {
	case "en":
		return en.All, true
	case "ru":
		return ru.All, true
	case "pt", "br":
		return br.All, true
	case "zh":
		return zh.All, true
	case "nl":
		return nl.All, true
	default:
		return nil, false
	}
}

// whenParser adapts one when.Parser to the Parser interface. English
// members additionally chain go-naturaldate as a second attempt, since it
// covers phrasings ("5 days from now") the casual rules miss.
type whenParser struct {
	lang        string
	w           *when.Parser
	naturaldate bool
}

func newWhenParser(lang string) (*whenParser, bool) {
	langRules, ok := casualRules(lang)
	if !ok {
		return nil, false
	}

	w := when.New(nil)
	w.Add(langRules...)
	w.Add(common.All...)
	w.Add(ordinalDayRule(rules.Override))

	return &whenParser{
		lang:        lang,
		w:           w,
		naturaldate: lang == "en",
	}, true
}

func (p *whenParser) Language() string {
	return p.lang
}

func (p *whenParser) Parse(text string, ref time.Time, opts Options) ([]Candidate, error) {
	res, err := p.w.Parse(text, ref)
	if err != nil {
		return nil, err
	}

	if res == nil {
		if !p.naturaldate {
			return nil, nil
		}
		return p.parseNaturalDate(text, ref, opts)
	}

	c := Candidate{
		Text:    res.Text,
		Index:   res.Index,
		Time:    res.Time,
		Certain: detectCertain(res.Text, res.Time, ref),
	}
	if opts.ForwardBias {
		c.Time = biasForward(c.Time, ref, c.Certain)
	}
	return []Candidate{c}, nil
}

// parseNaturalDate is the English second attempt. go-naturaldate resolves
// the whole expression or nothing, so a successful parse consumes the full
// input. It also parses unrelated words as "now", so a result equal to the
// reference is discarded.
func (p *whenParser) parseNaturalDate(text string, ref time.Time, opts Options) ([]Candidate, error) {
	// go-naturaldate defaults an absent count to 1, so bare unit words in
	// otherwise unrecognized text ("in weeks") would parse as a shifted
	// date. Require an explicit digit: the digit-free phrasings it covers
	// are already handled by the casual rules.
	if !strings.ContainsAny(text, "0123456789") {
		return nil, nil
	}

	direction := naturaldate.Past
	if opts.ForwardBias {
		direction = naturaldate.Future
	}

	t, err := naturaldate.Parse(text, ref, naturaldate.WithDirection(direction))
	if err != nil || t.Equal(ref) {
		return nil, nil
	}

	return []Candidate{{
		Text:    text,
		Index:   0,
		Time:    t,
		Certain: detectCertain(text, t, ref),
	}}, nil
}

// ordinalDayRule matches a bare ordinal like "the 25th" and pins the day
// of month, leaving every other field to the reference or to other rules
// in the same cluster ("25th at 9am").
func ordinalDayRule(s rules.Strategy) rules.Rule {
	overwrite := s == rules.Override

	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:\W|^)(?:the\s+)?([12][0-9]|3[01]|0?[1-9])\s*(?:st|nd|rd|th)(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			day, err := strconv.Atoi(strings.TrimSpace(m.Captures[0]))
			if err != nil {
				return false, nil
			}
			if c.Day == nil || overwrite {
				c.Day = &day
			}
			return true, nil
		},
	}
}

var (
	// clockRe spots an explicit clock time in any of the pool languages:
	// "15:04", "3pm", "15h", "15时".
	clockRe = regexp.MustCompile(`\d{1,2}:\d{2}|\d{1,2}\s*(?:am|pm|h\b|時|时|点)`)
	// minuteRe spots explicit minutes.
	minuteRe = regexp.MustCompile(`:\d{2}|\d{1,2}\s*分`)
	// yearRe spots an explicit four-digit year.
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// detectCertain reconstructs which calendar fields the matched text stated
// explicitly. The when library does not expose its rule context, so this
// combines surface patterns with a diff against the reference: a field that
// changed must have been stated, a field that merely carried over was
// inferred.
func detectCertain(text string, res, ref time.Time) Fields {
	var f Fields

	if yearRe.MatchString(text) {
		f |= FieldYear
	}
	if res.Month() != ref.Month() {
		f |= FieldMonth
	}
	if res.Year() != ref.Year() || res.Month() != ref.Month() || res.Day() != ref.Day() {
		f |= FieldDay
	}

	if clockRe.MatchString(strings.ToLower(text)) {
		f |= FieldHour
	}
	if res.Hour() != ref.Hour() {
		f |= FieldHour
	}
	if minuteRe.MatchString(text) || res.Minute() != ref.Minute() {
		f |= FieldMinute
	}

	return f
}

// biasForward nudges an ambiguous past result into the future. Explicit
// years are respected; a month-day without a year rolls to next year; a
// pure clock time earlier today rolls to tomorrow. Anything else (e.g.
// "3 days ago") stated its direction and is left alone.
func biasForward(t, ref time.Time, certain Fields) time.Time {
	if !t.Before(ref) || certain&FieldYear != 0 {
		return t
	}

	sameDate := t.Year() == ref.Year() && t.Month() == ref.Month() && t.Day() == ref.Day()
	switch {
	case sameDate && certain.HasClock():
		return t.AddDate(0, 0, 1)
	case certain&FieldMonth != 0 && certain&FieldDay != 0:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}
