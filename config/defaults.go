// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default fetch timeout in seconds.
	defaultFetchTimeoutSeconds = 30
	// Default number of catalogues loaded concurrently.
	defaultConcurrency = 4
	// Default number of fetched catalogues kept in memory.
	defaultCacheSize = 32
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Log.Level = "warn"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Parse.DefaultCharset = "iso-8859-1"
	cfg.Parse.StrictMissingKeys = false

	cfg.Output.Format = FormatJSON
	cfg.Output.Query = ""
	cfg.Output.Indent = true

	cfg.Fetch.BaseURL = ""
	cfg.Fetch.Timeout = defaultFetchTimeoutSeconds * time.Second
	cfg.Fetch.Concurrency = defaultConcurrency
	cfg.Fetch.UserAgent = "pocat/" + BuildVersion

	cfg.Cache.Enabled = false
	cfg.Cache.Size = defaultCacheSize
}
