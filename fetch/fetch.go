// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package fetch supplies raw catalogue bytes for a resource name.

[FSFetcher] reads from any [fs.FS], [HTTPFetcher] performs GET requests and
[CachedFetcher] keeps recently fetched catalogues in memory. [Mux] routes
http(s) URLs and local names to different fetchers.

Fetchers return bytes exactly as stored, apart from transfer compression
(gzip, zstd) and a leading UTF-8 byte order mark, which are removed. Charset
decoding is left to the parser.
*/
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a catalogue does not exist.
var ErrNotFound = errors.New("catalogue not found")

var errUnsupportedEncoding = errors.New("unsupported content encoding")

// Logger is the logger used by package fetch.
var Logger = zerolog.Nop()

// Fetcher supplies raw catalogue bytes for a resource name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FetcherFunc adapts a function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context, name string) ([]byte, error)

// Fetch calls f(ctx, name).
func (f FetcherFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// decompress undoes a gzip or zstd encoding. An empty encoding or "identity"
// returns data unchanged.
func decompress(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return data, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer zr.Close()

		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip stream: %w", err)
		}

		return out, nil
	case "zstd":
		zr, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer zr.Close()

		out, err := zr.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read zstd stream: %w", err)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, encoding)
	}
}

// encodingForName maps a compressed file suffix to its content encoding.
func encodingForName(name string) string {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return "gzip"
	case strings.HasSuffix(name, ".zst"):
		return "zstd"
	default:
		return ""
	}
}
