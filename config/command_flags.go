// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"time"
)

// Flags holds the command-line flags that override configuration values.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath string
	Version        bool

	format         string
	query          string
	defaultCharset string
	strict         bool
	logLevel       string
	baseURL        string
	timeout        time.Duration
	concurrency    int
	cache          bool
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVar(&f.ConfigFilePath, "config", "", "Path to a pocat configuration file in YAML format.")
	fs.BoolVar(&f.Version, "version", false, "Print the version and exit.")
	fs.StringVar(&f.format, "format", FormatJSON, "Output format: json, yaml or flat.")
	fs.StringVar(&f.query, "query", "", "gjson path applied to the JSON output.")
	fs.StringVar(&f.defaultCharset, "charset", "iso-8859-1", "Charset for catalogues that declare none.")
	fs.BoolVar(&f.strict, "strict", false, "Log and mark missing translations.")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn or error.")
	fs.StringVar(&f.baseURL, "base-url", "", "Base URL that relative catalogue names are fetched from.")
	fs.DurationVar(&f.timeout, "timeout", defaultFetchTimeoutSeconds*time.Second, "HTTP fetch timeout.")
	fs.IntVar(&f.concurrency, "concurrency", defaultConcurrency, "Number of catalogues loaded concurrently.")
	fs.BoolVar(&f.cache, "cache", false, "Keep fetched catalogues in an in-memory cache.")

	return f
}

// Apply copies the flags that were explicitly set on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "format":
			cfg.Output.Format = f.format
		case "query":
			cfg.Output.Query = f.query
		case "charset":
			cfg.Parse.DefaultCharset = f.defaultCharset
		case "strict":
			cfg.Parse.StrictMissingKeys = f.strict
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "base-url":
			cfg.Fetch.BaseURL = f.baseURL
		case "timeout":
			cfg.Fetch.Timeout = f.timeout
		case "concurrency":
			cfg.Fetch.Concurrency = f.concurrency
		case "cache":
			cfg.Cache.Enabled = f.cache
		}
	})
}
