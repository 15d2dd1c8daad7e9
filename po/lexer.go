// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import "strings"

// TokenKind identifies the kind of a lexed token.
type TokenKind int

// Token kinds produced by [Tokenize].
const (
	TokenComment TokenKind = iota + 1
	TokenKey
	TokenString
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenComment:
		return "comment"
	case TokenKey:
		return "key"
	case TokenString:
		return "string"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of a catalogue.
//
// For comments Value holds the line without the leading '#'. For strings Value
// holds the unescaped contents and Quote the delimiter that opened it.
type Token struct {
	Kind  TokenKind
	Value string
	Quote rune

	// comments is set on comment tokens by the classification stage.
	comments *Comments
}

// lexState is the state of the lexer's character-level state machine.
type lexState int

const (
	stateNone lexState = iota
	stateComment
	stateKey
	stateString
)

type lexer struct {
	input   []rune
	state   lexState
	escaped bool

	kind  TokenKind
	quote rune
	buf   strings.Builder

	tokens []Token
}

// Tokenize splits catalogue text into comment, key and string tokens.
//
// Tokenize never fails. A string or comment that runs to the end of the input is
// closed implicitly with whatever text was accumulated.
func Tokenize(text string) []Token {
	tokens, _ := lex(text)

	return tokens
}

// lex tokenizes text and reports whether the input ended inside a string.
func lex(text string) ([]Token, bool) {
	l := &lexer{input: []rune(text)}

	for i := 0; i < len(l.input); i++ {
		r := l.input[i]

		switch l.state {
		case stateNone:
			switch {
			case r == '"' || r == '\'':
				l.open(TokenString, r)
				l.state = stateString
			case r == '#':
				l.open(TokenComment, 0)
				l.state = stateComment
			case isSpace(r):
			default:
				l.open(TokenKey, 0)
				l.buf.WriteRune(r)
				l.state = stateKey
			}

		case stateComment:
			switch r {
			case '\n':
				l.close()
			case '\r':
			default:
				l.buf.WriteRune(r)
			}

		case stateString:
			switch {
			case l.escaped:
				l.buf.WriteRune(unescape(r))
				l.escaped = false
			case r == '\\':
				l.escaped = true
			case r == l.quote:
				l.close()
			default:
				l.buf.WriteRune(r)
			}

		case stateKey:
			if isKeyRune(r) {
				l.buf.WriteRune(r)

				continue
			}

			// Not part of the key: hand the rune back to stateNone.
			l.close()
			i--
		}
	}

	unterminated := l.state == stateString

	if l.state != stateNone {
		l.close()
	}

	return l.tokens, unterminated
}

func (l *lexer) open(kind TokenKind, quote rune) {
	l.kind = kind
	l.quote = quote
	l.escaped = false
	l.buf.Reset()
}

func (l *lexer) close() {
	l.tokens = append(l.tokens, Token{
		Kind:  l.kind,
		Value: l.buf.String(),
		Quote: l.quote,
	})
	l.buf.Reset()
	l.state = stateNone
}

// unescape maps the character following a backslash inside a string.
func unescape(r rune) rune {
	switch r {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// isSpace matches the whitespace class used between tokens, including the BOM.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}

	return r >= 0x2000 && r <= 0x200a
}

// isKeyRune matches word characters, hyphens and brackets, as in msgstr[1].
func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '[', r == ']':
		return true
	}

	return false
}
