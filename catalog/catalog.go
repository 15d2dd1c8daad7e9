// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext/plurals"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/pocatalog/po"
)

// Vars holds named template substitutions.
type Vars map[string]any

// pluralRule selects a msgstr index for a count.
type pluralRule interface {
	Eval(n uint32) int
}

// germanic is the "n != 1" rule used when a catalogue declares none.
type germanic struct{}

func (germanic) Eval(n uint32) int {
	if n != 1 {
		return 1
	}

	return 0
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithStrict enables strict mode, in which missing translations are logged
// once and wrapped as "⟦...⟧".
func WithStrict(strict bool) Option {
	return func(c *Catalog) {
		c.strict = strict
	}
}

// WithLanguage sets the catalogue's language, overriding its Language header.
func WithLanguage(tag language.Tag) Option {
	return func(c *Catalog) {
		c.lang = tag
	}
}

// Catalog translates msgids using a parsed table.
//
// A nil *Catalog is valid and returns every msgid untranslated.
type Catalog struct {
	table    *po.Table
	lang     language.Tag
	rule     pluralRule
	nplurals int
	strict   bool

	// templates caches compiled templates per unique template text.
	templates sync.Map // key: text, value: *template.Template
}

// New returns a catalogue for t. A nil t yields a catalogue that translates nothing.
//
// The plural rule is compiled from the Plural-Forms header. A missing or
// invalid expression falls back to "n != 1" and logs a warning in the latter case.
func New(t *po.Table, opts ...Option) *Catalog {
	c := &Catalog{
		table:    t,
		rule:     germanic{},
		nplurals: 2,
	}

	if tag, ok := t.Language(); ok {
		c.lang = tag
	}

	for _, opt := range opts {
		opt(c)
	}

	if expr, ok := PluralExpression(t); ok {
		compiled, err := plurals.Compile(expr)
		if err != nil {
			Logger.Warn().
				Err(err).
				Str("language", c.lang.String()).
				Str("expression", expr).
				Msg("Invalid plural expression, using n != 1")
		} else {
			c.rule = compiled

			if n, ok := NPlurals(t); ok {
				c.nplurals = n
			}
		}
	}

	return c
}

// Table returns the underlying table.
func (c *Catalog) Table() *po.Table {
	if c == nil {
		return nil
	}

	return c.table
}

// Language returns the catalogue's language, or [language.Und] if unknown.
func (c *Catalog) Language() language.Tag {
	if c == nil {
		return language.Und
	}

	return c.lang
}

// NPlurals returns the number of plural forms of the active rule.
func (c *Catalog) NPlurals() int {
	if c == nil {
		return 2
	}

	return c.nplurals
}

// PluralIndex returns the msgstr index the plural rule selects for n.
// Negative counts are treated by magnitude.
func (c *Catalog) PluralIndex(n int) int {
	var rule pluralRule = germanic{}
	if c != nil {
		rule = c.rule
	}

	if n < 0 {
		n = -n
	}

	u := uint64(n)
	if n < 0 || u > math.MaxUint32 {
		u = math.MaxUint32
	}

	return rule.Eval(uint32(u))
}

// Get returns the translation of msgid. If key-value pairs are provided, the
// translation is formatted using text/template-style named placeholders.
func (c *Catalog) Get(msgid string, kv ...any) string {
	return c.translate("", msgid, "", 0, false, v(kv...))
}

// GetC translates msgid within a disambiguating context, similar to gettext's pgettext.
func (c *Catalog) GetC(contextKey, msgid string, kv ...any) string {
	return c.translate(contextKey, msgid, "", 0, false, v(kv...))
}

// GetN translates a singular or plural message depending on n. If a translation
// is missing, singular is chosen when n == 1, otherwise plural.
func (c *Catalog) GetN(singular, plural string, n int, kv ...any) string {
	return c.translate("", singular, plural, n, true, v(kv...))
}

// GetNC is the contextual variant of GetN, similar to gettext's npgettext.
func (c *Catalog) GetNC(contextKey, singular, plural string, n int, kv ...any) string {
	return c.translate(contextKey, singular, plural, n, true, v(kv...))
}

// IsTranslated reports whether msgid has a usable translation in context contextKey.
func (c *Catalog) IsTranslated(contextKey, msgid string) bool {
	_, ok := c.lookup(contextKey, msgid, 0, false)

	return ok
}

// lookup returns the msgstr for id. Fuzzy entries, missing indices and empty
// strings count as untranslated.
func (c *Catalog) lookup(contextKey, id string, n int, pluralMode bool) (string, bool) {
	if c == nil || c.table == nil {
		return "", false
	}

	entry, ok := c.table.Lookup(contextKey, id)
	if !ok || entry.IsFuzzy() {
		return "", false
	}

	idx := 0
	if pluralMode {
		idx = c.PluralIndex(n)
	}

	if idx < 0 || idx >= len(entry.MsgStr) || entry.MsgStr[idx] == "" {
		return "", false
	}

	return entry.MsgStr[idx], true
}

// translate performs the underlying lookup and formatting.
func (c *Catalog) translate(
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
	vars Vars,
) string {
	// Fallback message
	base := singular
	if pluralMode && n != 1 {
		base = plural
	}

	finalText, found := c.lookup(contextKey, singular, n, pluralMode)
	if !found {
		finalText = base

		if c != nil && c.strict {
			logMissingOnce(c.Language().String(), buildLogKey(contextKey, singular))

			finalText = "⟦" + base + "⟧"
		}
	}

	return c.render(finalText, vars)
}

// render formats s as a text/template using the provided data.
func (c *Catalog) render(s string, data Vars) string {
	if len(data) == 0 || !strings.Contains(s, "{{") {
		return s
	}

	strict := c != nil && c.strict

	var tmpl *template.Template
	if t, ok := c.cachedTemplate(s); ok {
		tmpl = t
	} else {
		var err error

		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			logRenderErrorOnce(c.Language().String(), s, err, "Template parse error")

			if strict {
				return "⟦" + s + "⟧"
			}

			return s
		}

		if c != nil {
			c.templates.Store(s, tmpl)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		logRenderErrorOnce(c.Language().String(), s, err, "Template execute error")

		if strict {
			return "⟦" + s + "⟧"
		}

		return s
	}

	return buf.String()
}

func (c *Catalog) cachedTemplate(s string) (*template.Template, bool) {
	if c == nil {
		return nil, false
	}

	t, ok := c.templates.Load(s)
	if !ok {
		return nil, false
	}

	return t.(*template.Template), true
}

// v builds Vars from alternating key, value pairs.
// Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("catalog: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("catalog: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
