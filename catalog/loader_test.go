// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/pocatalog/charset"
	"codeberg.org/pixivfe/pocatalog/fetch"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/fr.po": {Data: []byte(frCatalogue)},
		"locales/de_AT.po": {Data: []byte("msgid \"\"\n" +
			"msgstr \"Content-Type: text/plain; charset=ISO-8859-1\\n\"\n\n" +
			"msgid \"Greeting\"\nmsgstr \"Gr\xfc\xdfe\"\n")},
		"locales/legacy.po": {Data: []byte("msgid \"Euro\"\nmsgstr \"\x80\"\n")},
		"locales/bad.po":    {Data: []byte("msgid \"\"\nmsgstr \"Content-Type: text/plain; charset=klingon\\n\"\n")},
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	loader := &Loader{Fetcher: fetch.NewFSFetcher(testFS())}

	fr, err := loader.Load(context.Background(), "locales/fr.po")
	require.NoError(t, err)
	assert.Equal(t, "fr", fr.Language().String())
	assert.Equal(t, "Bonjour", fr.Get("Hello"))
	assert.Equal(t, "utf-8", fr.Table().Charset)

	de, err := loader.Load(context.Background(), "locales/de_AT.po")
	require.NoError(t, err)
	assert.Equal(t, "de-AT", de.Language().String())
	assert.Equal(t, "Grüße", de.Get("Greeting"))
	assert.Equal(t, "iso-8859-1", de.Table().Charset)
}

func TestLoader_DefaultCharset(t *testing.T) {
	t.Parallel()

	loader := &Loader{
		Fetcher:        fetch.NewFSFetcher(testFS()),
		DefaultCharset: "windows-1252",
	}

	c, err := loader.Load(context.Background(), "locales/legacy.po")
	require.NoError(t, err)
	assert.Equal(t, "€", c.Get("Euro"))
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	loader := &Loader{Fetcher: fetch.NewFSFetcher(testFS())}

	_, err := loader.Load(context.Background(), "locales/xx.po")
	require.ErrorIs(t, err, fetch.ErrNotFound)

	_, err = loader.Load(context.Background(), "locales/bad.po")
	require.ErrorIs(t, err, charset.ErrUnknownCharset)
}

func TestLoader_LoadAll(t *testing.T) {
	t.Parallel()

	loader := &Loader{Fetcher: fetch.NewFSFetcher(testFS()), Concurrency: 2, Strict: true}

	names := []string{"locales/fr.po", "locales/de_AT.po", "locales/legacy.po"}

	got, err := loader.LoadAll(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Bonjour", got["locales/fr.po"].Get("Hello"))
	assert.Equal(t, "⟦Hello⟧", got["locales/de_AT.po"].Get("Hello"))

	_, err = loader.LoadAll(context.Background(), append(names, "locales/missing.po"))
	require.ErrorIs(t, err, fetch.ErrNotFound)
}

func TestLanguageFromName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "fr.po", want: "fr", ok: true},
		{name: "locales/pt_BR.po", want: "pt-BR", ok: true},
		{name: "locales/zh-Hant.po.gz", want: "zh-Hant", ok: true},
		{name: "https://example.com/i18n/ja.po.zst?v=2", want: "ja", ok: true},
		{name: "messages.pot", want: "und"},
		{name: "labels.po", want: "und"},
		{name: "fr.json", want: "und"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag, ok := LanguageFromName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, tag.String())
		})
	}
}
