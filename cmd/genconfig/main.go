// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Genconfig writes the example pocat configuration files, deploy/pocat.env.example
and deploy/pocat.yaml.example, from the configuration defaults.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/pocatalog/config"
)

const (
	envOutputFile  = "deploy/pocat.env.example"
	yamlOutputFile = "deploy/pocat.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755

	envFileHeader = `# pocat configuration (via environment variables)
#
# Export these variables, or copy this file to .env and source it.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# pocat configuration (via configuration file)
#
# Copy this file to pocat.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	proxySettingsComment = `
## Network proxy settings used when fetching catalogues over HTTP
## ref: https://pkg.go.dev/net/http#ProxyFromEnvironment
# HTTPS_PROXY=
# HTTP_PROXY=`
)

func main() {
	log.Logger = log.Output(config.ConsoleWriter(os.Stderr))

	write(envOutputFile, generateEnvFile())
	write(yamlOutputFile, generateYAMLFile())
}

func write(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write example file")
	}

	log.Info().Str("path", path).Msg("Successfully generated example file")
}

// generateEnvFile renders every env-tagged field with its default value, commented out.
func generateEnvFile() string {
	cfg := &config.Config{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Tag.Get("yaml") == "-" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case value.Kind() == reflect.Slice:
				parts := make([]string, value.Len())
				for k := range value.Len() {
					parts[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, strings.Join(parts, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				// Omit the value to prompt user input.
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(proxySettingsComment) + "\n")

	return sb.String()
}

// generateYAMLFile renders the default configuration as YAML with every value
// commented out.
func generateYAMLFile() string {
	cfg := &config.Config{}
	cfg.SetDefaults()

	yamlContent, err := cfg.YAML()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(string(yamlContent), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "fetch:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String()
}
