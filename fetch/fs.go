// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FSFetcher reads catalogues from a file system.
//
// Names ending in ".gz" or ".zst" are decompressed.
type FSFetcher struct {
	FS fs.FS
}

// NewFSFetcher returns a fetcher reading from fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{FS: fsys}
}

// Fetch reads the named catalogue. The read itself is not interruptible; ctx is
// only checked before starting.
func (f *FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(f.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	data, err = decompress(data, encodingForName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}

	Logger.Debug().
		Str("name", name).
		Int("bytes", len(data)).
		Msg("Read catalogue")

	return stripBOM(data), nil
}
