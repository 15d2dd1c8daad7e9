// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"fmt"

	"github.com/rs/zerolog"

	"codeberg.org/pixivfe/pocatalog/charset"
)

// DefaultCharset is assumed for raw catalogue bytes that declare no charset.
const DefaultCharset = "iso-8859-1"

type options struct {
	defaultCharset string
	normalizer     charset.Normalizer
	decoder        charset.Decoder
	logger         zerolog.Logger
}

// Option configures [Parse] and [ParseString].
type Option func(*options)

// WithDefaultCharset sets the charset assumed when raw input declares none.
func WithDefaultCharset(name string) Option {
	return func(o *options) {
		o.defaultCharset = name
	}
}

// WithNormalizer sets how declared charset names are canonicalised.
func WithNormalizer(n charset.Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithDecoder sets how raw input in a non-UTF-8 charset is decoded.
func WithDecoder(d charset.Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithLogger sets a logger for debug diagnostics about input the parser recovered from.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		defaultCharset: DefaultCharset,
		normalizer:     charset.DefaultNormalizer,
		decoder:        charset.DefaultDecoder,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Parse parses raw catalogue bytes.
//
// The charset is taken from the header entry's Content-Type line, or the
// default charset when none is declared, and the bytes are decoded to UTF-8
// before parsing. An error is returned only when decoding fails.
func Parse(data []byte, opts ...Option) (*Table, error) {
	o := newOptions(opts)

	text := string(data)
	name := o.defaultCharset

	if declared, ok := DetectCharset(text); ok {
		name = o.normalizer.Normalize(declared, o.defaultCharset)
	}

	if name != charset.UTF8 {
		decoded, err := o.decoder.Decode(data, name)
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalogue as %s: %w", name, err)
		}

		text = decoded
	}

	return parse(text, name, o), nil
}

// ParseString parses catalogue text that is already decoded. The table's
// charset is always utf-8.
func ParseString(text string, opts ...Option) *Table {
	return parse(text, charset.UTF8, newOptions(opts))
}

func parse(text, charsetName string, o *options) *Table {
	tokens, unterminated := lex(text)
	if unterminated {
		o.logger.Debug().Msg("Catalogue ends inside a string")
	}

	tokens = joinAdjacent(tokens)
	classifyComments(tokens)

	kvs := assembleKeyValues(tokens, &o.logger)
	entries := assembleEntries(kvs, &o.logger)

	return normalize(entries, charsetName)
}
