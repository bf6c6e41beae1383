// Package i18n resolves the request locale and looks up translated strings
// from catalogs embedded in the binary.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

type Bundle struct {
	def      string
	locales  []string
	matcher  language.Matcher
	catalogs map[string]map[string]string
}

// New loads the catalogs for locales; the first match wins when negotiating,
// so def is always placed first.
func New(def string, locales []string) (*Bundle, error) {
	if def == "" {
		def = "vi"
	}
	ordered := []string{def}
	for _, l := range locales {
		if l != def {
			ordered = append(ordered, l)
		}
	}

	b := &Bundle{def: def, locales: ordered, catalogs: make(map[string]map[string]string, len(ordered))}
	tags := make([]language.Tag, 0, len(ordered))
	for _, l := range ordered {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: bad locale %q: %w", l, err)
		}
		tags = append(tags, tag)

		raw, err := localesFS.ReadFile(path.Join("locales", l+".json"))
		if err != nil {
			return nil, fmt.Errorf("i18n: no catalog for %q: %w", l, err)
		}
		msgs := map[string]string{}
		if err := json.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %q: %w", l, err)
		}
		b.catalogs[l] = msgs
	}
	b.matcher = language.NewMatcher(tags)

	return b, nil
}

func (b *Bundle) Default() string { return b.def }

func (b *Bundle) Locales() []string { return append([]string(nil), b.locales...) }

// Supported reports whether locale is served verbatim as a path prefix.
func (b *Bundle) Supported(locale string) bool {
	_, ok := b.catalogs[locale]
	return ok
}

// Negotiate picks the locale for a request: a supported cookie value wins,
// then the best Accept-Language match, then the default.
func (b *Bundle) Negotiate(cookie, acceptLanguage string) string {
	if b.Supported(cookie) {
		return cookie
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return b.def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.def
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.def
	}
	return b.locales[idx]
}

// T returns the message for key in locale, falling back to the default locale
// and finally to the key itself. Args are applied with fmt.Sprintf.
func (b *Bundle) T(locale, key string, args ...any) string {
	msg, ok := b.catalogs[locale][key]
	if !ok {
		msg, ok = b.catalogs[b.def][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
