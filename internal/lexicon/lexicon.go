// Package lexicon provides per-language surface forms for the semantic
// keys the grammar compiler needs ("next", "monday", "and", ...).
//
// Entries live in embedded go-i18n message files, one per language. Each
// value is a pipe-delimited variant list; the first variant is the
// canonical display form, the rest are parse-time synonyms. Translators
// (localizers) are built lazily and cached for the life of the provider,
// since they are expensive to construct and cheap to reuse.
package lexicon

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed translations/*.toml
var translationsFS embed.FS

// DefaultLanguage is the hardcoded fallback when a requested language has
// no lexicon, and the language of last resort at engine construction.
const DefaultLanguage = "en"

// Languages lists every language code with a built-in lexicon, in the
// order the message files ship.
var Languages = []string{"en", "fr", "de", "es", "it", "pt", "nl", "ru", "zh", "ja"}

// Keys every language file is expected to carry. The grammar compiler
// iterates these; missing entries fall back to English.
var (
	ImmediateKeys = []string{"now", "today", "tomorrow", "yesterday"}
	PrefixKeys    = []string{"this", "next", "last"}
	WeekdayKeys   = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	UnitKeys      = []string{"minutes", "hours", "days", "weeks", "months", "years"}
	StructureKeys = []string{"in", "and", "at", "from", "to", "week", "month", "year"}
)

// Provider resolves (language, key) pairs to surface-form variant lists.
// Safe for concurrent use: the bundle is read-only after construction and
// the localizer cache follows a load-once-per-key discipline (an idempotent
// re-load on race is harmless).
type Provider struct {
	bundle *i18n.Bundle
	log    *slog.Logger

	mu         sync.RWMutex
	localizers map[string]*i18n.Localizer
}

// NewProvider loads the embedded lexicon files and returns a ready
// provider. It fails only when the embedded data itself is unusable.
func NewProvider(log *slog.Logger) (*Provider, error) {
	if log == nil {
		log = slog.Default()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := fs.Glob(translationsFS, "translations/*.toml")
	if err != nil {
		return nil, fmt.Errorf("globbing embedded lexicon: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no embedded lexicon files found")
	}
	for _, path := range entries {
		if _, err := bundle.LoadMessageFileFS(translationsFS, path); err != nil {
			return nil, fmt.Errorf("loading lexicon file %s: %w", path, err)
		}
	}

	return &Provider{
		bundle:     bundle,
		log:        log,
		localizers: make(map[string]*i18n.Localizer),
	}, nil
}

// LoadOverrides merges message files from dir into the lexicon. Files must
// be named messages.<lang>.toml or messages.<lang>.yaml. Unreadable files
// are logged and skipped; the built-in entries stay authoritative for
// anything the overrides omit.
func (p *Provider) LoadOverrides(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "messages.*.toml"))
	if err != nil {
		return fmt.Errorf("globbing overrides: %w", err)
	}
	yamlMatches, err := filepath.Glob(filepath.Join(dir, "messages.*.yaml"))
	if err != nil {
		return fmt.Errorf("globbing overrides: %w", err)
	}
	matches = append(matches, yamlMatches...)

	for _, path := range matches {
		if _, err := p.bundle.LoadMessageFile(path); err != nil {
			p.log.Warn("skipping unreadable lexicon override", "path", path, "error", err)
			continue
		}
	}

	// Override files may add forms for cached languages.
	p.mu.Lock()
	p.localizers = make(map[string]*i18n.Localizer)
	p.mu.Unlock()
	return nil
}

// Supported reports whether lang has a built-in lexicon.
func Supported(lang string) bool {
	lang = Normalize(lang)
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Normalize lower-cases a language code and strips any region subtag
// ("pt-BR" -> "pt").
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

func (p *Provider) localizer(lang string) *i18n.Localizer {
	p.mu.RLock()
	loc, ok := p.localizers[lang]
	p.mu.RUnlock()
	if ok {
		return loc
	}

	loc = i18n.NewLocalizer(p.bundle, lang)

	p.mu.Lock()
	p.localizers[lang] = loc
	p.mu.Unlock()
	return loc
}

// Translate returns the raw pipe-delimited variant string for key in lang.
// Missing entries fall back to the default language; ok is false only when
// the key is unknown everywhere.
func (p *Provider) Translate(key, lang string) (string, bool) {
	lang = Normalize(lang)

	msg, err := p.localizer(lang).Localize(&i18n.LocalizeConfig{MessageID: key})
	if err == nil && msg != "" {
		return msg, true
	}

	if lang != DefaultLanguage {
		msg, err = p.localizer(DefaultLanguage).Localize(&i18n.LocalizeConfig{MessageID: key})
		if err == nil && msg != "" {
			return msg, true
		}
	}

	return "", false
}

// Variants returns every surface form for key in lang, lower-cased and
// trimmed, in declaration order (canonical form first).
func (p *Provider) Variants(key, lang string) []string {
	raw, ok := p.Translate(key, lang)
	if !ok {
		return nil
	}

	parts := strings.Split(raw, "|")
	variants := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			variants = append(variants, part)
		}
	}
	return variants
}

// Canonical returns the display form for key in lang, or "" when unknown.
func (p *Provider) Canonical(key, lang string) string {
	if v := p.Variants(key, lang); len(v) > 0 {
		return v[0]
	}
	return ""
}
