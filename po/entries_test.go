// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesOf(t *testing.T, text string) []*Entry {
	t.Helper()

	logger := zerolog.Nop()

	tokens := joinAdjacent(Tokenize(text))
	classifyComments(tokens)

	return assembleEntries(assembleKeyValues(tokens, &logger), &logger)
}

func TestAssembleKeyValues(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()

	tokens := joinAdjacent(Tokenize("\"orphan\"\n# note\nmsgid \"a\" \"b\"\nmsgstr \"c\""))
	classifyComments(tokens)

	kvs := assembleKeyValues(tokens, &logger)

	require.Len(t, kvs, 2)
	assert.Equal(t, "msgid", kvs[0].key)
	assert.Equal(t, "ab", kvs[0].value)
	require.NotNil(t, kvs[0].comments)
	assert.Equal(t, "note", kvs[0].comments.Translator)
	assert.Equal(t, "msgstr", kvs[1].key)
	assert.Equal(t, "c", kvs[1].value)
	assert.Nil(t, kvs[1].comments)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := map[string]keyKind{
		"msgctxt":      keyMsgCtxt,
		"MSGCTXT":      keyMsgCtxt,
		"msgid":        keyMsgID,
		"MsgId":        keyMsgID,
		"msgid_plural": keyMsgIDPlural,
		"msgstr":       keyMsgStr,
		"msgstr[0]":    keyMsgStr,
		"MSGSTR[12]":   keyMsgStr,
		"msgstrx":      keyMsgStr,
		"msg":          keyUnknown,
		"domain":       keyUnknown,
	}

	for key, want := range tests {
		assert.Equal(t, want, kindOf(key), key)
	}
}

func TestAssembleEntries_Plural(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
msgid "apple"
msgid_plural "apples"
msgstr[0] "une pomme"
# between forms
msgstr[1] "des pommes"
`)

	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "apple", e.MsgID)
	require.NotNil(t, e.MsgIDPlural)
	assert.Equal(t, "apples", *e.MsgIDPlural)
	assert.Equal(t, []string{"une pomme", "des pommes"}, e.MsgStr)
	require.NotNil(t, e.Comments)
	assert.Equal(t, "between forms", e.Comments.Translator)
}

func TestAssembleEntries_PluralOrderIsAppearanceOrder(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
msgid "x"
msgid_plural "xs"
msgstr[1] "second"
msgstr[0] "first"
`)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"second", "first"}, entries[0].MsgStr)
}

func TestAssembleEntries_ContextAndComments(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
#. from msgctxt
msgctxt "menu"
msgid "File"
msgstr "Fichier"

#: own.go:1
msgid "Open"
msgstr "Ouvrir"
`)

	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].MsgCtxt)
	assert.Equal(t, "menu", *entries[0].MsgCtxt)
	assert.Equal(t, "from msgctxt", entries[0].Comments.Extracted)

	assert.Nil(t, entries[1].MsgCtxt, "context must not carry over past msgid")
	assert.Equal(t, "own.go:1", entries[1].Comments.Reference)
}

func TestAssembleEntries_OrphansDropped(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
msgstr "orphan"
msgid_plural "orphans"
msgid "kept"
msgstr "ok"
`)

	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].MsgID)
	assert.Equal(t, []string{"ok"}, entries[0].MsgStr)
	assert.Nil(t, entries[0].MsgIDPlural)
}

func TestAssembleEntries_EntryWithoutMsgStr(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `msgid "lonely"`)

	require.Len(t, entries, 1)
	assert.Equal(t, "lonely", entries[0].MsgID)
	assert.Nil(t, entries[0].MsgStr)
}

func TestAssembleEntries_UnknownKeyKeepsCarryOver(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
msgctxt "ctx"
domain "ignored"
msgid "id"
msgstr "str"
`)

	require.Len(t, entries, 1)
	assert.Equal(t, "ctx", entries[0].Context())
}

func TestEntry_Accessors(t *testing.T) {
	t.Parallel()

	entries := entriesOf(t, `
#, fuzzy
msgctxt "c"
msgid "a"
msgid_plural "as"
msgstr[0] "b"
`)

	require.Len(t, entries, 1)
	assert.Equal(t, "c", entries[0].Context())
	assert.Equal(t, "as", entries[0].Plural())
	assert.True(t, entries[0].IsFuzzy())

	plain := &Entry{MsgID: "p"}
	assert.Equal(t, "", plain.Context())
	assert.Equal(t, "", plain.Plural())
	assert.False(t, plain.IsFuzzy())
}
