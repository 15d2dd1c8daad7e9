// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package charset resolves the charset names found in catalogue headers and
decodes catalogue bytes to UTF-8.

Names are first normalised with [FormatCharset] (for example "UTF8" becomes
"utf-8" and "latin1" becomes "iso-8859-1"), then looked up in the IANA registry
and, failing that, among the WHATWG encoding labels.
*/
package charset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical name of UTF-8, which needs no decoding.
const UTF8 = "utf-8"

// ErrUnknownCharset is returned when no encoding is known for a charset name.
var ErrUnknownCharset = errors.New("unknown charset")

// Normalizer maps a charset name found in a catalogue header to a canonical name.
type Normalizer interface {
	// Normalize returns the canonical name for name. Fallback is used when name
	// is a placeholder rather than a real charset.
	Normalize(name, fallback string) string
}

// NormalizerFunc adapts a function to the [Normalizer] interface.
type NormalizerFunc func(name, fallback string) string

// Normalize calls f(name, fallback).
func (f NormalizerFunc) Normalize(name, fallback string) string {
	return f(name, fallback)
}

// Decoder converts catalogue bytes in a named charset to UTF-8 text.
type Decoder interface {
	Decode(data []byte, name string) (string, error)
}

// DecoderFunc adapts a function to the [Decoder] interface.
type DecoderFunc func(data []byte, name string) (string, error)

// Decode calls f(data, name).
func (f DecoderFunc) Decode(data []byte, name string) (string, error) {
	return f(data, name)
}

var (
	// DefaultNormalizer applies [FormatCharset].
	DefaultNormalizer Normalizer = NormalizerFunc(FormatCharset)

	// DefaultDecoder applies [Decode].
	DefaultDecoder Decoder = DecoderFunc(Decode)
)

var (
	utfRegexp     = regexp.MustCompile(`^utf[-_]?(\d+)$`)
	windowsRegexp = regexp.MustCompile(`^win(?:dows)?[-_]?(\d+)$`)
	latinRegexp   = regexp.MustCompile(`^latin[-_]?(\d+)$`)
	asciiRegexp   = regexp.MustCompile(`^(us[-_]?)?ascii$`)
)

// FormatCharset lower-cases name and rewrites common spellings to the names used
// by the IANA registry. The gettext template placeholder "CHARSET" resolves to
// fallback, or "iso-8859-1" when fallback is empty.
func FormatCharset(name, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		s = "iso-8859-1"
	}

	s = utfRegexp.ReplaceAllString(s, "utf-$1")
	s = windowsRegexp.ReplaceAllString(s, "windows-$1")
	s = latinRegexp.ReplaceAllString(s, "iso-8859-$1")
	s = asciiRegexp.ReplaceAllString(s, "ascii")

	if s == "charset" {
		if fallback == "" {
			return "iso-8859-1"
		}

		return fallback
	}

	return s
}

// Lookup returns the encoding registered for name.
func Lookup(name string) (encoding.Encoding, error) {
	// ianaindex returns a nil encoding without error for registered but
	// unsupported charsets.
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}

	if enc, _ := htmlcharset.Lookup(name); enc != nil {
		return enc, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// Decode converts data from the named charset to UTF-8.
func Decode(data []byte, name string) (string, error) {
	if strings.EqualFold(name, UTF8) {
		return string(data), nil
	}

	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return string(out), nil
}
