// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// print writes the effective configuration to stderr when debug logging is on.
func (cfg *Config) print() {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	log.Debug().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting pocat")

	configYAML, err := cfg.YAML()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Debug().
		Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// YAML returns the configuration as indented YAML with human-readable durations.
func (cfg *Config) YAML() ([]byte, error) {
	return yaml.MarshalWithOptions(
		*cfg,
		GetDurationEncoderOption(),
		yaml.Indent(2),
	)
}
