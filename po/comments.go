// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import "strings"

// Comments holds the categorised comment block preceding a catalogue key.
//
// Each field is the newline-joined text of all lines of that category.
// Categories that did not occur are empty; use [Comments.Has] to tell an
// absent category from one whose lines were blank.
type Comments struct {
	Translator string `json:"translator,omitempty" yaml:"translator,omitempty"` // "# "
	Extracted  string `json:"extracted,omitempty"  yaml:"extracted,omitempty"`  // "#."
	Reference  string `json:"reference,omitempty"  yaml:"reference,omitempty"`  // "#:"
	Flag       string `json:"flag,omitempty"       yaml:"flag,omitempty"`       // "#,"
	Previous   string `json:"previous,omitempty"   yaml:"previous,omitempty"`   // "#|"

	present Category
}

// Category identifies a kind of comment line.
type Category uint8

// Comment categories.
const (
	Translator Category = 1 << iota // "# "
	Extracted                       // "#."
	Reference                       // "#:"
	Flag                            // "#,"
	Previous                        // "#|"
)

// Has reports whether the block contained at least one line of category,
// even if those lines were empty.
func (c *Comments) Has(category Category) bool {
	if c == nil {
		return false
	}

	if c.present&category != 0 {
		return true
	}

	switch category {
	case Translator:
		return c.Translator != ""
	case Extracted:
		return c.Extracted != ""
	case Reference:
		return c.Reference != ""
	case Flag:
		return c.Flag != ""
	case Previous:
		return c.Previous != ""
	default:
		return false
	}
}

// HasFlag reports whether the comma-separated flag comments contain flag,
// for example "fuzzy".
func (c *Comments) HasFlag(flag string) bool {
	if c == nil {
		return false
	}

	for _, line := range strings.Split(c.Flag, "\n") {
		for _, f := range strings.Split(line, ",") {
			if strings.TrimSpace(f) == flag {
				return true
			}
		}
	}

	return false
}

// ClassifyComment sorts the lines of a comment block, with the leading '#'
// already removed, into their categories by the first character of each line.
func ClassifyComment(text string) *Comments {
	var (
		translator, extracted, reference, flag, previous []string
		present                                          Category
	)

	for _, line := range strings.Split(text, "\n") {
		var marker byte
		if line != "" {
			marker = line[0]
		}

		switch marker {
		case ':':
			reference = append(reference, strings.TrimSpace(line[1:]))
			present |= Reference
		case '.':
			extracted = append(extracted, trimLeftSpace(line[1:]))
			present |= Extracted
		case ',':
			flag = append(flag, trimLeftSpace(line[1:]))
			present |= Flag
		case '|':
			previous = append(previous, trimLeftSpace(line[1:]))
			present |= Previous
		default:
			translator = append(translator, trimLeftSpace(line))
			present |= Translator
		}
	}

	return &Comments{
		Translator: strings.Join(translator, "\n"),
		Extracted:  strings.Join(extracted, "\n"),
		Reference:  strings.Join(reference, "\n"),
		Flag:       strings.Join(flag, "\n"),
		Previous:   strings.Join(previous, "\n"),
		present:    present,
	}
}

// classifyComments attaches a classified record to every comment token.
func classifyComments(tokens []Token) {
	for i := range tokens {
		if tokens[i].Kind == TokenComment {
			tokens[i].comments = ClassifyComment(tokens[i].Value)
		}
	}
}

func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}
