// Package i18n holds user-facing error message catalogs per locale.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Code mirrors the machine-readable error code strings. The codes are
// duplicated here as plain strings to avoid an import cycle with the
// parent errors package.
type Code = string

// fallbackMessage is used when a code has no catalog entry.
const fallbackMessage = "The request could not be completed"

// Catalog stores the user-facing messages for one locale.
type Catalog struct {
	locale   string
	tag      language.Tag
	messages map[Code]string
}

// Locale returns the catalog's BCP 47 locale string.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, substituting {{.Key}} placeholders
// from the metadata map.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return fallbackMessage
	}
	if len(metadata) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(metadata)*2)
	for key, value := range metadata {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var catalogs = []*Catalog{enUSCatalog}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.tag
	}
	return language.NewMatcher(tags)
}()

// GetCatalog returns the best catalog for a BCP 47 locale, falling back to
// en-US for unknown or malformed locales.
func GetCatalog(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(tag)
	return catalogs[index]
}
