// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import "github.com/rs/zerolog"

// keyValue is a key together with the concatenation of the strings that follow it.
type keyValue struct {
	key      string
	value    string
	comments *Comments
}

// assembleKeyValues pairs each key token with the string tokens that follow it.
//
// A comment token immediately before a key is attached to it. Strings seen
// before the first key have nothing to attach to and are dropped.
func assembleKeyValues(tokens []Token, logger *zerolog.Logger) []keyValue {
	var out []keyValue

	for i, tok := range tokens {
		switch tok.Kind {
		case TokenKey:
			kv := keyValue{key: tok.Value}
			if i > 0 && tokens[i-1].Kind == TokenComment {
				kv.comments = tokens[i-1].comments
			}

			out = append(out, kv)
		case TokenString:
			if len(out) == 0 {
				logger.Debug().
					Str("value", tok.Value).
					Msg("Dropping string with no preceding key")

				continue
			}

			out[len(out)-1].value += tok.Value
		case TokenComment:
		}
	}

	return out
}
