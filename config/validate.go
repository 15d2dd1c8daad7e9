// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"codeberg.org/pixivfe/pocatalog/charset"
)

// validation errors.
var (
	errInvalidLogLevel     = errors.New("invalid Log.Level value")
	errInvalidLogFormat    = errors.New("invalid Log.Format value")
	errInvalidOutputFormat = errors.New("invalid Output.Format value")
	errQueryRequiresJSON   = errors.New("Output.Query requires the json output format")
	errInvalidBaseURL      = errors.New("Fetch.BaseURL must be an absolute http(s) URL")
	errInvalidTimeout      = errors.New("Fetch.Timeout must be positive")
	errInvalidConcurrency  = errors.New("Fetch.Concurrency must be at least 1")
	errInvalidCacheSize    = errors.New("Cache.Size must be at least 1 when the cache is enabled")
)

var (
	logLevels     = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	logFormats    = []string{"console", "json"}
	outputFormats = []string{FormatJSON, FormatYAML, FormatFlat}
)

// validateAndSet validates the configuration and normalises some fields.
func (cfg *Config) validateAndSet() error {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	// The default charset goes through the same normalisation as declared ones,
	// so "latin1" or "UTF8" are accepted.
	cfg.Parse.DefaultCharset = charset.FormatCharset(cfg.Parse.DefaultCharset, "")
	if _, err := charset.Lookup(cfg.Parse.DefaultCharset); err != nil {
		return fmt.Errorf("invalid Parse.DefaultCharset: %w", err)
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if !slices.Contains(outputFormats, cfg.Output.Format) {
		return fmt.Errorf("%w: %q", errInvalidOutputFormat, cfg.Output.Format)
	}

	if cfg.Output.Query != "" && cfg.Output.Format != FormatJSON {
		return errQueryRequiresJSON
	}

	if cfg.Fetch.BaseURL != "" {
		u, err := url.Parse(cfg.Fetch.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidBaseURL, cfg.Fetch.BaseURL)
		}

		// Relative names resolve under the base path rather than replacing its last segment.
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}

		cfg.Fetch.BaseURL = u.String()
	}

	if cfg.Fetch.Timeout <= 0 {
		return errInvalidTimeout
	}

	if cfg.Fetch.Concurrency < 1 {
		return errInvalidConcurrency
	}

	if cfg.Cache.Enabled && cfg.Cache.Size < 1 {
		return errInvalidCacheSize
	}

	return nil
}
