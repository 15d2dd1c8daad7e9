// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/pocatalog/po"
)

func newBundle(t *testing.T) *Bundle {
	t.Helper()

	fr := newFrench(t)
	de := New(po.ParseString("msgid \"Hello\"\nmsgstr \"Hallo\"\n"), WithLanguage(language.German))
	unknown := New(po.ParseString("msgid \"Hello\"\nmsgstr \"?\"\n"))

	return NewBundle(language.English, fr, de, unknown)
}

func TestBundle_Languages(t *testing.T) {
	t.Parallel()

	b := newBundle(t)

	var got []string
	for _, tag := range b.Languages() {
		got = append(got, tag.String())
	}

	assert.Equal(t, []string{"en", "de", "fr"}, got)

	_, ok := b.Catalog(language.English)
	assert.False(t, ok)

	de, ok := b.Catalog(language.German)
	require.True(t, ok)
	assert.Equal(t, "Hallo", de.Get("Hello"))
}

func TestBundle_Match(t *testing.T) {
	t.Parallel()

	b := newBundle(t)

	tests := []struct {
		name      string
		preferred []string
		wantTag   string
		wantHello string
	}{
		{name: "exact", preferred: []string{"de"}, wantTag: "de", wantHello: "Hallo"},
		{name: "regional variant", preferred: []string{"fr-CA"}, wantTag: "fr", wantHello: "Bonjour"},
		{name: "accept-language", preferred: []string{"ja,fr;q=0.8,de;q=0.5"}, wantTag: "fr", wantHello: "Bonjour"},
		{name: "unsupported", preferred: []string{"ja"}, wantTag: "en", wantHello: "Hello"},
		{name: "nothing", wantTag: "en", wantHello: "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, tag := b.Match(tt.preferred...)
			assert.Equal(t, tt.wantTag, tag.String())
			assert.Equal(t, tt.wantHello, c.Get("Hello"))
		})
	}
}

func TestBundle_FromRequest(t *testing.T) {
	t.Parallel()

	b := newBundle(t)

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		wantTag        string
	}{
		{name: "query parameter wins", target: "/?lang=de", acceptLanguage: "fr", wantTag: "de"},
		{name: "auto ignores query", target: "/?lang=auto", acceptLanguage: "fr", wantTag: "fr"},
		{name: "header only", target: "/", acceptLanguage: "de-AT", wantTag: "de"},
		{name: "no preference", target: "/", wantTag: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.acceptLanguage != "" {
				r.Header.Set("Accept-Language", tt.acceptLanguage)
			}

			_, tag := b.FromRequest(r)
			assert.Equal(t, tt.wantTag, tag.String())
		})
	}

	c, tag := b.FromRequest(nil)
	assert.Nil(t, c)
	assert.Equal(t, "en", tag.String())
}
