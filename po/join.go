// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

// joinAdjacent merges runs of adjacent string tokens into one string and runs
// of adjacent comment tokens into one newline-separated comment block.
func joinAdjacent(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		if n := len(out); n > 0 {
			last := &out[n-1]

			switch {
			case tok.Kind == TokenString && last.Kind == TokenString:
				last.Value += tok.Value

				continue
			case tok.Kind == TokenComment && last.Kind == TokenComment:
				last.Value += "\n" + tok.Value

				continue
			}
		}

		out = append(out, tok)
	}

	return out
}
