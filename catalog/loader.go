// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/pocatalog/charset"
	"codeberg.org/pixivfe/pocatalog/fetch"
	"codeberg.org/pixivfe/pocatalog/po"
)

// defaultConcurrency bounds LoadAll when Loader.Concurrency is unset.
const defaultConcurrency = 4

// Loader fetches and parses catalogues.
type Loader struct {
	// Fetcher supplies the raw catalogue bytes.
	Fetcher fetch.Fetcher

	// DefaultCharset is used for catalogues that do not declare one.
	// Empty means [po.DefaultCharset].
	DefaultCharset string

	// Normalizer and Decoder override the parser's charset handling when set.
	Normalizer charset.Normalizer
	Decoder    charset.Decoder

	// Strict enables strict mode on loaded catalogues.
	Strict bool

	// Concurrency bounds the number of catalogues LoadAll processes at once.
	Concurrency int
}

func (l *Loader) parseOptions() []po.Option {
	opts := []po.Option{po.WithLogger(Logger)}

	if l.DefaultCharset != "" {
		opts = append(opts, po.WithDefaultCharset(l.DefaultCharset))
	}

	if l.Normalizer != nil {
		opts = append(opts, po.WithNormalizer(l.Normalizer))
	}

	if l.Decoder != nil {
		opts = append(opts, po.WithDecoder(l.Decoder))
	}

	return opts
}

// LoadTable fetches and parses the named catalogue.
func (l *Loader) LoadTable(ctx context.Context, name string) (*po.Table, error) {
	start := time.Now()

	data, err := l.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog %s: %w", name, err)
	}

	table, err := po.Parse(data, l.parseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}

	Logger.Info().
		Str("name", name).
		Str("charset", table.Charset).
		Int("entries", table.Len()).
		Dur("duration", time.Since(start)).
		Msg("Loaded catalog")

	return table, nil
}

// Load fetches, parses and wraps the named catalogue.
//
// When the catalogue has no Language header, the language is derived from
// the file name, for example "pt_BR.po" or "locales/de.po.gz".
func (l *Loader) Load(ctx context.Context, name string) (*Catalog, error) {
	table, err := l.LoadTable(ctx, name)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithStrict(l.Strict)}

	if _, ok := table.Language(); !ok {
		if tag, ok := LanguageFromName(name); ok {
			opts = append(opts, WithLanguage(tag))
		}
	}

	return New(table, opts...), nil
}

// LoadAll loads names concurrently and returns the catalogues keyed by name.
// The first failure cancels the remaining loads and is returned.
func (l *Loader) LoadAll(ctx context.Context, names []string) (map[string]*Catalog, error) {
	limit := l.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]*Catalog, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		g.Go(func() error {
			c, err := l.Load(gctx, name)
			if err != nil {
				return err
			}

			results[i] = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*Catalog, len(names))
	for i, name := range names {
		out[name] = results[i]
	}

	return out, nil
}

// LanguageFromName derives a language tag from a catalogue file name or URL.
// Both underscore and hyphen separators are accepted.
func LanguageFromName(name string) (language.Tag, bool) {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}

	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".zst")

	ext := path.Ext(base)
	if ext != ".po" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(base, ext), "_", "-"))
	if err != nil {
		return language.Und, false
	}

	return tag, true
}
