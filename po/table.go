// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"strings"

	"golang.org/x/text/language"
)

// Table is a parsed catalogue indexed by context and then by msgid.
type Table struct {
	// Charset is the canonical name of the charset the catalogue was decoded from.
	Charset string `json:"charset" yaml:"charset"`

	// Headers holds the header entry's "Key: Value" lines keyed by lower-cased key.
	// It is nil when the catalogue has no header entry.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Translations maps context, "" for none, to msgid to entry.
	// The "" context is always present.
	Translations map[string]map[string]*Entry `json:"translations" yaml:"translations"`
}

// normalize indexes entries into a Table. Later entries with the same context
// and msgid replace earlier ones.
func normalize(entries []*Entry, charset string) *Table {
	t := &Table{
		Charset:      charset,
		Translations: map[string]map[string]*Entry{"": {}},
	}

	for _, entry := range entries {
		ctx := entry.Context()

		byID, ok := t.Translations[ctx]
		if !ok {
			byID = make(map[string]*Entry)
			t.Translations[ctx] = byID
		}

		if t.Headers == nil && ctx == "" && entry.MsgID == "" {
			var raw string
			if len(entry.MsgStr) > 0 {
				raw = entry.MsgStr[0]
			}

			t.Headers = ParseHeader(raw)
		}

		byID[entry.MsgID] = entry
	}

	return t
}

// ParseHeader parses a header block of "Key: Value" lines. Keys are trimmed and
// lower-cased; only the first colon separates key from value. Lines without a
// key are skipped.
func ParseHeader(s string) map[string]string {
	headers := make(map[string]string)

	for _, line := range strings.Split(s, "\n") {
		key, value, _ := strings.Cut(strings.TrimSpace(line), ":")

		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}

		headers[key] = strings.TrimSpace(value)
	}

	return headers
}

// Lookup returns the entry for msgid in context ctx.
func (t *Table) Lookup(ctx, msgid string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}

	entry, ok := t.Translations[ctx][msgid]

	return entry, ok
}

// Header returns the value of the header key, matched case-insensitively.
func (t *Table) Header(key string) string {
	if t == nil {
		return ""
	}

	return t.Headers[strings.ToLower(key)]
}

// PluralForms returns the raw Plural-Forms header.
func (t *Table) PluralForms() string {
	return t.Header("Plural-Forms")
}

// Language returns the tag declared by the Language header.
//
// Both "pt_BR" and "pt-BR" spellings are accepted.
func (t *Table) Language() (language.Tag, bool) {
	raw := t.Header("Language")
	if raw == "" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return language.Und, false
	}

	return tag, true
}

// Len returns the number of entries across all contexts, including the header entry.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	n := 0
	for _, byID := range t.Translations {
		n += len(byID)
	}

	return n
}
