// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultHTTPTimeout bounds a fetch when the caller's client has no timeout.
const defaultHTTPTimeout = 30 * time.Second

// StatusError is returned when a catalogue request gets an HTTP 4xx or 5xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error returns the URL and status code.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP status %d", e.URL, e.StatusCode)
}

// Unwrap maps 404 and 410 to [ErrNotFound].
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone {
		return ErrNotFound
	}

	return nil
}

// HTTPFetcher fetches catalogues over HTTP.
//
// Relative names are resolved against BaseURL. Responses compressed with gzip
// or zstd are decompressed.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
	Header  http.Header
}

// NewHTTPFetcher returns a fetcher resolving names against baseURL, with the given
// request timeout. A zero timeout uses a default of 30 seconds.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPFetcher{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: baseURL,
	}
}

func (f *HTTPFetcher) resolve(name string) (string, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return "", fmt.Errorf("invalid catalogue name %q: %w", name, err)
	}

	if f.BaseURL == "" || ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", f.BaseURL, err)
	}

	return base.ResolveReference(ref).String(), nil
}

// Fetch GETs the named catalogue.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := f.resolve(name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}

	for key, values := range f.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	// Setting Accept-Encoding disables the transport's implicit gzip handling,
	// so both encodings are decoded below.
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}

	encoding := resp.Header.Get("Content-Encoding")

	body, err = decompress(body, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress response from %s: %w", target, err)
	}

	Logger.Debug().
		Str("url", target).
		Int("status_code", resp.StatusCode).
		Str("encoding", strings.ToLower(encoding)).
		Dur("duration", time.Since(start)).
		Msg("Fetched catalogue")

	return stripBOM(body), nil
}
