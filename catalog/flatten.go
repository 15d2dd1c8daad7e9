// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"strconv"
	"strings"

	"codeberg.org/pixivfe/pocatalog/po"
)

// Flatten maps each msgid of the default context to its last msgstr element.
//
// The header entry is skipped. Entries without a msgstr map to "".
func Flatten(t *po.Table) map[string]string {
	if t == nil {
		return map[string]string{}
	}

	byID := t.Translations[""]
	out := make(map[string]string, len(byID))

	for id, entry := range byID {
		if id == "" {
			continue
		}

		var msgstr string
		if n := len(entry.MsgStr); n > 0 {
			msgstr = entry.MsgStr[n-1]
		}

		out[id] = msgstr
	}

	return out
}

// pluralFormsField returns the value of field in a Plural-Forms header such as
// "nplurals=2; plural=(n != 1);".
func pluralFormsField(t *po.Table, field string) (string, bool) {
	for _, part := range strings.Split(t.PluralForms(), ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), field) {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			return "", false
		}

		return value, true
	}

	return "", false
}

// PluralExpression returns the plural= expression of the Plural-Forms header.
func PluralExpression(t *po.Table) (string, bool) {
	return pluralFormsField(t, "plural")
}

// NPlurals returns the nplurals= count of the Plural-Forms header.
func NPlurals(t *po.Table) (int, bool) {
	raw, ok := pluralFormsField(t, "nplurals")
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}
