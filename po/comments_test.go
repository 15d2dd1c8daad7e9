// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Comments
	}{
		{
			name:  "extracted reference and flag",
			input: ".extracted text\n:file.po:3\n,fuzzy",
			want: Comments{
				Extracted: "extracted text",
				Reference: "file.po:3",
				Flag:      "fuzzy",
				present:   Extracted | Reference | Flag,
			},
		},
		{
			name:  "translator lines are joined",
			input: " first line\n  second line",
			want:  Comments{Translator: "first line\nsecond line", present: Translator},
		},
		{
			name:  "payload whitespace is stripped",
			input: ":  src/a.go:1  \n.   note\n|  msgid \"old\"",
			want: Comments{
				Reference: "src/a.go:1",
				Extracted: "note",
				Previous:  `msgid "old"`,
				present:   Reference | Extracted | Previous,
			},
		},
		{
			name:  "multiple references",
			input: ": a.go:1\n: b.go:2",
			want:  Comments{Reference: "a.go:1\nb.go:2", present: Reference},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, &tt.want, ClassifyComment(tt.input))
		})
	}
}

func TestComments_Has(t *testing.T) {
	t.Parallel()

	// A bare "#" line yields an empty but present translator comment.
	bare := ClassifyComment("")
	assert.True(t, bare.Has(Translator))
	assert.Empty(t, bare.Translator)
	assert.False(t, bare.Has(Reference))

	c := ClassifyComment(":\n, fuzzy")
	assert.True(t, c.Has(Reference))
	assert.Empty(t, c.Reference)
	assert.True(t, c.Has(Flag))
	assert.False(t, c.Has(Translator))
	assert.False(t, c.Has(Extracted))
	assert.False(t, c.Has(Previous))

	// Records built without classification fall back to the text.
	decoded := &Comments{Extracted: "note"}
	assert.True(t, decoded.Has(Extracted))
	assert.False(t, decoded.Has(Flag))

	var none *Comments
	assert.False(t, none.Has(Translator))
}

func TestComments_HasFlag(t *testing.T) {
	t.Parallel()

	c := ClassifyComment(", fuzzy, c-format\n, no-wrap")

	assert.True(t, c.HasFlag("fuzzy"))
	assert.True(t, c.HasFlag("c-format"))
	assert.True(t, c.HasFlag("no-wrap"))
	assert.False(t, c.HasFlag("python-format"))

	var none *Comments
	assert.False(t, none.HasFlag("fuzzy"))
}
