// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Pocat parses gettext .po catalogues and prints them as JSON, YAML or flat
msgid to msgstr maps.

Usage:

	pocat [flags] <file-or-url>...

A name of "-" reads a catalogue from standard input. http(s) URLs are fetched
over HTTP; with -base-url every name is resolved against that URL instead.
With a single name the table itself is printed, otherwise an object keyed by
name. Files ending in .gz or .zst are decompressed.
*/
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/pocatalog/catalog"
	"codeberg.org/pixivfe/pocatalog/config"
	"codeberg.org/pixivfe/pocatalog/fetch"
)

// stdinName is the catalogue name that reads standard input.
const stdinName = "-"

var (
	errNoCatalogues = errors.New("no catalogues given")
	errNoMatch      = errors.New("query matched nothing")
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		log.Fatal().Err(err).Msg("pocat failed")
	}
}

// run parses args, loads the named catalogues and writes them to stdout.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("pocat", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pocat [flags] <file-or-url>...\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := &config.Config{}
	if err := cfg.LoadConfig(flags); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Version {
		_, err := fmt.Fprintf(stdout, "pocat %s (%s)\n", config.BuildVersion, cfg.Build.Revision())

		return err
	}

	names := fs.Args()
	if len(names) == 0 {
		fs.Usage()

		return errNoCatalogues
	}

	setupLoggers()

	loader, err := newLoader(cfg, stdin)
	if err != nil {
		return err
	}

	catalogs, err := loader.LoadAll(ctx, names)
	if err != nil {
		return err
	}

	out, err := render(cfg, names, catalogs)
	if err != nil {
		return err
	}

	_, err = stdout.Write(out)

	return err
}

// setupLoggers derives the subsystem loggers from the configured global logger.
func setupLoggers() {
	fetch.Logger = log.With().Str("sys", "fetch").Logger()
	catalog.Logger = log.With().Str("sys", "catalog").Logger()
}

// newLoader builds the fetcher chain described by cfg.
func newLoader(cfg *config.Config, stdin io.Reader) (*catalog.Loader, error) {
	remote := fetch.NewHTTPFetcher(cfg.Fetch.BaseURL, cfg.Fetch.Timeout)
	remote.Header = http.Header{"User-Agent": []string{cfg.Fetch.UserAgent}}

	var fetcher fetch.Fetcher = &fetch.Mux{Local: localFetcher(), Remote: remote}
	if cfg.Fetch.BaseURL != "" {
		fetcher = remote
	}

	if cfg.Cache.Enabled {
		cached, err := fetch.NewCachedFetcher(fetcher, cfg.Cache.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalogue cache: %w", err)
		}

		fetcher = cached
	}

	return &catalog.Loader{
		Fetcher:        withStdin(fetcher, stdin),
		DefaultCharset: cfg.Parse.DefaultCharset,
		Strict:         cfg.Parse.StrictMissingKeys,
		Concurrency:    cfg.Fetch.Concurrency,
	}, nil
}

// localFetcher reads relative or absolute paths from the host file system.
func localFetcher() fetch.Fetcher {
	root := fetch.NewFSFetcher(os.DirFS("/"))

	return fetch.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}

		return root.Fetch(ctx, strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	})
}

// withStdin serves stdinName from stdin and everything else from next.
// stdin is read at most once.
func withStdin(next fetch.Fetcher, stdin io.Reader) fetch.Fetcher {
	return fetch.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
		if name != stdinName {
			return next.Fetch(ctx, name)
		}

		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}

		return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
	})
}

// document returns the value to print: the single table or flat map, or an
// object of them keyed by name.
func document(cfg *config.Config, names []string, catalogs map[string]*catalog.Catalog) any {
	view := func(c *catalog.Catalog) any {
		if cfg.Output.Format == config.FormatFlat {
			return catalog.Flatten(c.Table())
		}

		return c.Table()
	}

	if len(names) == 1 {
		return view(catalogs[names[0]])
	}

	out := make(map[string]any, len(catalogs))
	for name, c := range catalogs {
		out[name] = view(c)
	}

	return out
}

// render encodes the loaded catalogues in the configured output format.
func render(cfg *config.Config, names []string, catalogs map[string]*catalog.Catalog) ([]byte, error) {
	doc := document(cfg, names, catalogs)

	if cfg.Output.Format == config.FormatYAML {
		out, err := yaml.MarshalWithOptions(doc, yaml.Indent(2))
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return out, nil
	}

	var (
		out []byte
		err error
	)

	if cfg.Output.Indent && cfg.Output.Query == "" {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	if cfg.Output.Query != "" {
		return query(out, cfg.Output.Query)
	}

	return append(out, '\n'), nil
}

// query applies a gjson path to doc. String results are printed unquoted.
func query(doc []byte, path string) ([]byte, error) {
	result := gjson.GetBytes(doc, path)
	if !result.Exists() {
		return nil, fmt.Errorf("%w: %s", errNoMatch, path)
	}

	if result.Type == gjson.String {
		return []byte(result.String() + "\n"), nil
	}

	return []byte(result.Raw + "\n"), nil
}
