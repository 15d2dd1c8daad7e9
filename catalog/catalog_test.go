// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/pocatalog/po"
)

const frCatalogue = `msgid ""
msgstr ""
"Language: fr\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n > 1);\n"

msgid "Hello"
msgstr "Bonjour"

msgctxt "menu"
msgid "Open"
msgstr "Ouvrir"

msgid "{{.Count}} file"
msgid_plural "{{.Count}} files"
msgstr[0] "{{.Count}} fichier"
msgstr[1] "{{.Count}} fichiers"

msgctxt "menu"
msgid "{{.Count}} item"
msgid_plural "{{.Count}} items"
msgstr[0] "{{.Count}} élément"
msgstr[1] "{{.Count}} éléments"

#, fuzzy
msgid "Draft"
msgstr "Brouillon"

msgid "Empty"
msgstr ""

msgid "Welcome, {{.Name}}!"
msgstr "Bienvenue, {{.Name}} !"
`

func newFrench(t *testing.T, opts ...Option) *Catalog {
	t.Helper()

	c := New(po.ParseString(frCatalogue), opts...)
	require.NotNil(t, c)

	return c
}

func TestCatalog_Get(t *testing.T) {
	t.Parallel()

	c := newFrench(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "translated", got: c.Get("Hello"), want: "Bonjour"},
		{name: "missing", got: c.Get("Goodbye"), want: "Goodbye"},
		{name: "empty msgstr", got: c.Get("Empty"), want: "Empty"},
		{name: "fuzzy ignored", got: c.Get("Draft"), want: "Draft"},
		{name: "context", got: c.GetC("menu", "Open"), want: "Ouvrir"},
		{name: "context required", got: c.Get("Open"), want: "Open"},
		{name: "template", got: c.Get("Welcome, {{.Name}}!", "Name", "Ana"), want: "Bienvenue, Ana !"},
		{name: "missing template", got: c.Get("Bye, {{.Name}}", "Name", "Ana"), want: "Bye, Ana"},
		{name: "no vars keeps markers", got: c.Get("Welcome, {{.Name}}!"), want: "Bienvenue, {{.Name}} !"},
		{name: "missing key", got: c.Get("Welcome, {{.Name}}!", "Other", 1), want: "Bienvenue, {{.Name}} !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestCatalog_GetN(t *testing.T) {
	t.Parallel()

	c := newFrench(t)

	// French uses the singular for 0 and 1.
	assert.Equal(t, "0 fichier", c.GetN("{{.Count}} file", "{{.Count}} files", 0, "Count", 0))
	assert.Equal(t, "1 fichier", c.GetN("{{.Count}} file", "{{.Count}} files", 1, "Count", 1))
	assert.Equal(t, "5 fichiers", c.GetN("{{.Count}} file", "{{.Count}} files", 5, "Count", 5))

	assert.Equal(t, "2 éléments", c.GetNC("menu", "{{.Count}} item", "{{.Count}} items", 2, "Count", 2))
	assert.Equal(t, "2 items", c.GetN("{{.Count}} item", "{{.Count}} items", 2, "Count", 2))

	assert.Equal(t, "dog", c.GetN("dog", "dogs", 1))
	assert.Equal(t, "dogs", c.GetN("dog", "dogs", 0))

	assert.Equal(t, 2, c.NPlurals())
	assert.Equal(t, 0, c.PluralIndex(-1))
	assert.Equal(t, 1, c.PluralIndex(-7))
}

func TestCatalog_DefaultPluralRule(t *testing.T) {
	t.Parallel()

	table := po.ParseString(`msgid "apple"
msgid_plural "apples"
msgstr[0] "Apfel"
msgstr[1] "Äpfel"
`)

	_, ok := PluralExpression(table)
	require.False(t, ok)

	c := New(table, WithLanguage(language.German))

	assert.Equal(t, "Äpfel", c.GetN("apple", "apples", 0))
	assert.Equal(t, "Apfel", c.GetN("apple", "apples", 1))
	assert.Equal(t, "Äpfel", c.GetN("apple", "apples", 2))
	assert.Equal(t, 2, c.NPlurals())
	assert.Equal(t, "de", c.Language().String())
}

func TestCatalog_Strict(t *testing.T) {
	t.Parallel()

	c := newFrench(t, WithStrict(true))

	assert.Equal(t, "Bonjour", c.Get("Hello"))
	assert.Equal(t, "⟦Goodbye⟧", c.Get("Goodbye"))
	assert.Equal(t, "⟦Goodbye⟧", c.Get("Goodbye"))
	assert.Equal(t, "⟦Open⟧", c.Get("Open"))
	assert.Equal(t, "⟦cats⟧", c.GetN("cat", "cats", 3))
	assert.Equal(t, "⟦Bienvenue, {{.Name}} !⟧", c.Get("Welcome, {{.Name}}!", "Other", 1))
}

func TestCatalog_Nil(t *testing.T) {
	t.Parallel()

	var c *Catalog

	assert.Equal(t, "Hello", c.Get("Hello"))
	assert.Equal(t, "Hi Bob", c.GetC("ctx", "Hi {{.Name}}", "Name", "Bob"))
	assert.Equal(t, "files", c.GetNC("ctx", "file", "files", 2))
	assert.False(t, c.IsTranslated("", "Hello"))
	assert.Nil(t, c.Table())
	assert.Equal(t, language.Und, c.Language())
}

func TestCatalog_Metadata(t *testing.T) {
	t.Parallel()

	c := newFrench(t)

	assert.Equal(t, "fr", c.Language().String())
	assert.True(t, c.IsTranslated("menu", "Open"))
	assert.False(t, c.IsTranslated("", "Draft"))
	assert.Equal(t, "fr", c.Table().Header("Language"))
}

func TestV_PanicsOnBadPairs(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { v("Name") })
	assert.Panics(t, func() { v(1, "x") })
	assert.Equal(t, Vars{"A": 1}, v("A", 1))
}

// Not parallel: swaps the package logger.
func TestCatalog_RenderErrorsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer

	prev := Logger
	Logger = zerolog.New(&buf)

	t.Cleanup(func() { Logger = prev })

	c := New(po.ParseString(`msgid ""
msgstr "Language: nl\n"

msgid "Broken {{.Name"
msgstr "Kapot {{.Name"

msgid "Hi {{.Name}}"
msgstr "Hoi {{.Name}}"
`))

	for range 3 {
		assert.Equal(t, "Kapot {{.Name", c.Get("Broken {{.Name", "Name", "Bob"))
		assert.Equal(t, "Hoi {{.Name}}", c.Get("Hi {{.Name}}", "Other", 1))
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Template parse error"), out)
	assert.Equal(t, 1, strings.Count(out, "Template execute error"), out)
}

func TestNew_NilTable(t *testing.T) {
	t.Parallel()

	c := New(nil, WithStrict(true))
	require.NotNil(t, c)

	assert.Equal(t, language.Und, c.Language())
	assert.Equal(t, 2, c.NPlurals())
	assert.Equal(t, "⟦Hello⟧", c.Get("Hello"))
	assert.Equal(t, "⟦files⟧", c.GetN("file", "files", 2))
	assert.False(t, c.IsTranslated("", "Hello"))
	assert.Empty(t, Flatten(nil))
}
