// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import "regexp"

var (
	firstMsgIDRegexp = regexp.MustCompile(`(?im)^\s*msgid`)
	nextEntryRegexp  = regexp.MustCompile(`(?im)^\s*(?:msgid|msgctxt)`)
	charsetRegexp    = regexp.MustCompile(`(?im)[; ]charset\s*=\s*([\w-]+)(?:[\s;]|\\n)*"\s*$`)
)

// headerBlock returns the text up to the entry following the first msgid,
// which is where the header entry's msgstr lives.
func headerBlock(text string) string {
	loc := firstMsgIDRegexp.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	start := loc[1]

	next := nextEntryRegexp.FindStringIndex(text[start:])
	if next == nil {
		return text
	}

	return text[:start+next[0]]
}

// DetectCharset returns the charset declared in the header entry's
// Content-Type line, as written in the catalogue.
func DetectCharset(text string) (string, bool) {
	m := charsetRegexp.FindStringSubmatch(headerBlock(text))
	if m == nil {
		return "", false
	}

	return m[1], true
}
