// Package i18n resolves localization keys to display strings.
//
// Messages are kept in a golang.org/x/text message catalog and loaded from
// YAML locale documents:
//
//	locale: en
//	messages:
//	  common.unknown: Unknown
//
// A Localizer picks the best matching locale and falls back to the bundle's
// default locale, then to the caller-provided fallback string.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// Translator resolves a key, returning fallback when the key is unknown.
type Translator interface {
	Translate(key, fallback string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key, fallback string) string

// Translate calls f.
func (f TranslatorFunc) Translate(key, fallback string) string {
	return f(key, fallback)
}

// Nop always returns the fallback.
type Nop struct{}

// Translate returns fallback.
func (Nop) Translate(_, fallback string) string {
	return fallback
}

// Bundle holds messages for a set of locales.
type Bundle struct {
	mu       sync.RWMutex
	builder  *catalog.Builder
	tags     []language.Tag
	keys     map[language.Tag]map[string]struct{}
	matcher  language.Matcher
	fallback language.Tag
}

// NewBundle creates an empty bundle whose default locale is fallback.
func NewBundle(fallback language.Tag) *Bundle {
	return &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		tags:     []language.Tag{fallback},
		keys:     map[language.Tag]map[string]struct{}{fallback: {}},
		matcher:  language.NewMatcher([]language.Tag{fallback}),
		fallback: fallback,
	}
}

// Add registers messages for a locale.
func (b *Bundle) Add(tag language.Tag, messages map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	known, ok := b.keys[tag]
	if !ok {
		known = make(map[string]struct{}, len(messages))
		b.keys[tag] = known
		b.tags = append(b.tags, tag)
		b.matcher = language.NewMatcher(b.tags)
	}

	for key, msg := range messages {
		if key == "" {
			return errors.NewValidationError("key", msg, "message key is required")
		}
		// Messages are literal text; the printer formats whatever it looks up.
		if err := b.builder.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
			return errors.NewResourceError("load", "locale", tag.String(), err)
		}
		known[key] = struct{}{}
	}
	return nil
}

// Locales returns the registered locales, default first.
func (b *Bundle) Locales() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

// Localizer returns a translator for the best match of the requested locales.
// An empty or unparsable request selects the default locale.
func (b *Bundle) Localizer(locales ...string) *Localizer {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, idx := language.MatchStrings(b.matcher, locales...)
	tag := b.tags[idx]
	return &Localizer{
		bundle:  b,
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

func (b *Bundle) has(tag language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.keys[tag][key]
	return ok
}

// Localizer translates keys for one locale.
type Localizer struct {
	bundle  *Bundle
	tag     language.Tag
	printer *message.Printer
}

// Tag returns the selected locale.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Translate resolves key in the selected locale, then in the default locale.
func (l *Localizer) Translate(key, fallback string) string {
	if l == nil || key == "" {
		return fallback
	}
	if l.bundle.has(l.tag, key) {
		return l.printer.Sprintf(key)
	}
	if l.tag != l.bundle.fallback && l.bundle.has(l.bundle.fallback, key) {
		return message.NewPrinter(l.bundle.fallback, message.Catalog(l.bundle.builder)).Sprintf(key)
	}
	return fallback
}

var (
	_ Translator = Nop{}
	_ Translator = TranslatorFunc(nil)
	_ Translator = (*Localizer)(nil)
)
