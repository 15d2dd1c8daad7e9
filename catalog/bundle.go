// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"net/http"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// LangParam is the name of the URL query parameter read by [Bundle.FromRequest]
// as a preferred language.
const LangParam = "lang"

// Bundle holds catalogues for several languages and matches user preferences
// against them.
type Bundle struct {
	base    language.Tag
	byTag   map[string]*Catalog // keyed by canonical tag string
	tags    []language.Tag
	matcher language.Matcher
}

// NewBundle returns a bundle over catalogs, keyed by each catalogue's language.
//
// base is always matchable and acts as the default fallback; it need not have a
// catalogue, in which case matching it yields a nil *Catalog that returns
// msgids untranslated. Catalogues without a language are skipped. When two
// catalogues share a language the later one wins.
func NewBundle(base language.Tag, catalogs ...*Catalog) *Bundle {
	b := &Bundle{
		base:  base,
		byTag: make(map[string]*Catalog),
	}

	var tagsList []language.Tag

	for _, c := range catalogs {
		tag := c.Language()
		if tag == language.Und {
			Logger.Warn().Msg("Skipping catalog without a language")

			continue
		}

		if _, dup := b.byTag[tag.String()]; !dup {
			tagsList = append(tagsList, tag)
		}

		b.byTag[tag.String()] = c
	}

	// base is first to make it the default fallback for matching.
	all := make([]language.Tag, 0, len(tagsList)+1)
	all = append(all, base)

	// Sort loaded tags by their canonical string.
	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	for _, t := range tagsList {
		if t.String() == base.String() {
			continue
		}

		all = append(all, t)
	}

	b.tags = all
	b.matcher = language.NewMatcher(all)

	return b
}

// Languages returns the matchable tags, base first and the rest sorted by tag
// string. The returned slice is a copy.
func (b *Bundle) Languages() []language.Tag {
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)

	return out
}

// Catalog returns the catalogue loaded for exactly tag.
func (b *Bundle) Catalog(tag language.Tag) (*Catalog, bool) {
	c, ok := b.byTag[tag.String()]

	return c, ok
}

// Match returns the catalogue best matching the preferences, each a tag or an
// Accept-Language value, together with the matched tag.
func (b *Bundle) Match(preferred ...string) (*Catalog, language.Tag) {
	_, index := language.MatchStrings(b.matcher, preferred...)
	if index < 0 || index >= len(b.tags) {
		index = 0
	}

	tag := b.tags[index]

	return b.byTag[tag.String()], tag
}

// FromRequest matches the preferences expressed by r: the [LangParam] query
// parameter first, then the Accept-Language header.
//
// If LangParam is "auto" (case-insensitive) only Accept-Language is considered.
// A nil r matches the base language.
func (b *Bundle) FromRequest(r *http.Request) (*Catalog, language.Tag) {
	if r == nil {
		return b.byTag[b.base.String()], b.base
	}

	preferred := make([]string, 0, 2)

	if q := r.URL.Query().Get(LangParam); q != "" && !strings.EqualFold(q, "auto") {
		preferred = append(preferred, q)
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	return b.Match(preferred...)
}
