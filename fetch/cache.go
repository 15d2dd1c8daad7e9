// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"net/url"

	"codeberg.org/pixivfe/pocatalog/fetch/lrucache"
)

// CachedFetcher serves repeated fetches of the same name from memory.
//
// Only successful fetches are cached.
type CachedFetcher struct {
	next  Fetcher
	cache *lrucache.Cache
}

// NewCachedFetcher wraps next with an LRU cache of size entries, stored
// zstd-compressed.
func NewCachedFetcher(next Fetcher, size int) (*CachedFetcher, error) {
	cache, err := lrucache.New(size, true)
	if err != nil {
		return nil, err
	}

	return &CachedFetcher{next: next, cache: cache}, nil
}

// Fetch returns the cached bytes for name, fetching them on a miss.
func (c *CachedFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if data, ok := c.cache.Get(name); ok {
		Logger.Debug().Str("name", name).Msg("Catalogue cache hit")

		return data, nil
	}

	data, err := c.next.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	if evicted := c.cache.Add(name, data); evicted {
		Logger.Debug().Str("name", name).Msg("Evicted least recently used catalogue")
	}

	return data, nil
}

// Forget drops name from the cache.
func (c *CachedFetcher) Forget(name string) bool {
	return c.cache.Remove(name)
}

// Mux dispatches http and https URLs to Remote and every other name to Local.
type Mux struct {
	Local  Fetcher
	Remote Fetcher
}

// Fetch routes name to the matching fetcher.
func (m *Mux) Fetch(ctx context.Context, name string) ([]byte, error) {
	if u, err := url.Parse(name); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return m.Remote.Fetch(ctx, name)
	}

	return m.Local.Fetch(ctx, name)
}
