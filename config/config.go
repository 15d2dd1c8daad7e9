// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config loads the pocat configuration.

Values are layered in order of increasing precedence: built-in defaults, a
YAML configuration file, POCAT_* environment variables and finally explicitly
set command-line flags.
*/
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatFlat = "flat"
)

const defaultConfigFilePath = "./pocat.yaml"

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Log struct {
		Level   string   `env:"POCAT_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"POCAT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"POCAT_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Parse struct {
		// DefaultCharset is used for catalogues whose header declares no charset.
		DefaultCharset string `env:"POCAT_DEFAULT_CHARSET,overwrite" yaml:"defaultCharset"`

		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per language+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"POCAT_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"parse"`

	Output struct {
		Format string `env:"POCAT_OUTPUT_FORMAT,overwrite" yaml:"format"`
		Query  string `env:"POCAT_QUERY,overwrite" yaml:"query"` // gjson path applied to the JSON output
		Indent bool   `env:"POCAT_OUTPUT_INDENT,overwrite" yaml:"indent"`
	} `yaml:"output"`

	Fetch struct {
		BaseURL     string        `env:"POCAT_BASE_URL,overwrite" yaml:"baseUrl"`
		Timeout     time.Duration `env:"POCAT_FETCH_TIMEOUT,overwrite" yaml:"timeout"`
		Concurrency int           `env:"POCAT_CONCURRENCY,overwrite" yaml:"concurrency"`
		UserAgent   string        `env:"POCAT_USER_AGENT,overwrite" yaml:"userAgent"`
	} `yaml:"fetch"`

	Cache struct {
		Enabled bool `env:"POCAT_CACHE,overwrite" yaml:"enabled"`
		Size    int  `env:"POCAT_CACHE_SIZE,overwrite" yaml:"cacheSize"`
	} `yaml:"cache"`
}

// LoadConfig loads the configuration from defaults, the YAML file, the
// environment and the explicitly set flags, then validates it and sets up logging.
//
// The config file path is taken from the -config flag; when it is empty,
// POCAT_CONFIGFILE is consulted, then "./pocat.yaml" with a fallback to
// "./pocat.yml". flags may be nil.
func (cfg *Config) LoadConfig(flags *Flags) error {
	var configFilePath string
	if flags != nil {
		configFilePath = flags.ConfigFilePath
	}

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (POCAT_CONFIGFILE)
	// 3. Default path with fallback check
	switch {
	case configFilePath != "":
	case os.Getenv("POCAT_CONFIGFILE") != "":
		configFilePath = os.Getenv("POCAT_CONFIGFILE")
	default:
		configFilePath = defaultConfigFilePath

		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./pocat.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if flags != nil {
		flags.Apply(cfg)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	cfg.print()

	return nil
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30s", "1m0s").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
