// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package po

import (
	"strings"

	"github.com/rs/zerolog"
)

// Entry is a single translation unit of a catalogue.
type Entry struct {
	MsgID       string    `json:"msgid"                  yaml:"msgid"`
	MsgIDPlural *string   `json:"msgid_plural,omitempty" yaml:"msgid_plural,omitempty"`
	MsgCtxt     *string   `json:"msgctxt,omitempty"      yaml:"msgctxt,omitempty"`
	MsgStr      []string  `json:"msgstr,omitempty"       yaml:"msgstr,omitempty"`
	Comments    *Comments `json:"comments,omitempty"     yaml:"comments,omitempty"`
}

// Context returns the entry's context, or "" when it has none.
func (e *Entry) Context() string {
	if e.MsgCtxt == nil {
		return ""
	}

	return *e.MsgCtxt
}

// Plural returns the entry's plural msgid, or "" when it has none.
func (e *Entry) Plural() string {
	if e.MsgIDPlural == nil {
		return ""
	}

	return *e.MsgIDPlural
}

// IsFuzzy reports whether the entry carries the "fuzzy" flag.
func (e *Entry) IsFuzzy() bool {
	return e.Comments.HasFlag("fuzzy")
}

// keyKind is the role of a catalogue key.
type keyKind int

const (
	keyUnknown keyKind = iota
	keyMsgCtxt
	keyMsgID
	keyMsgIDPlural
	keyMsgStr
)

// msgstrPrefix also covers the indexed plural forms msgstr[N].
const msgstrPrefix = "msgstr"

// kindOf classifies a key case-insensitively.
func kindOf(key string) keyKind {
	switch k := strings.ToLower(key); {
	case k == "msgctxt":
		return keyMsgCtxt
	case k == "msgid":
		return keyMsgID
	case k == "msgid_plural":
		return keyMsgIDPlural
	case strings.HasPrefix(k, msgstrPrefix):
		return keyMsgStr
	default:
		return keyUnknown
	}
}

// entryAssembler groups msgctxt, msgid, msgid_plural and msgstr runs into entries.
//
// A msgctxt and its comments are carried over to the next msgid. The carry-over
// is reset after every msgid, msgid_plural or msgstr key.
type entryAssembler struct {
	logger *zerolog.Logger

	entries []*Entry
	current *Entry

	context  *string
	comments *Comments
}

func assembleEntries(kvs []keyValue, logger *zerolog.Logger) []*Entry {
	a := &entryAssembler{logger: logger}

	for _, kv := range kvs {
		a.add(kv)
	}

	return a.entries
}

func (a *entryAssembler) add(kv keyValue) {
	switch kindOf(kv.key) {
	case keyMsgCtxt:
		value := kv.value
		a.context = &value
		a.comments = kv.comments

		return
	case keyMsgID:
		entry := &Entry{
			MsgID:    kv.value,
			MsgCtxt:  a.context,
			Comments: a.comments,
		}
		if entry.Comments == nil {
			entry.Comments = kv.comments
		}

		a.entries = append(a.entries, entry)
		a.current = entry
	case keyMsgIDPlural:
		if a.current == nil {
			a.drop(kv)

			break
		}

		value := kv.value
		a.current.MsgIDPlural = &value
		a.attachComments(kv)
	case keyMsgStr:
		if a.current == nil {
			a.drop(kv)

			break
		}

		a.current.MsgStr = append(a.current.MsgStr, kv.value)
		a.attachComments(kv)
	case keyUnknown:
		a.logger.Debug().Str("key", kv.key).Msg("Ignoring unknown key")

		return
	}

	a.context = nil
	a.comments = nil
}

// attachComments gives the open entry kv's comments if it has none yet.
func (a *entryAssembler) attachComments(kv keyValue) {
	if a.current.Comments == nil && kv.comments != nil {
		a.current.Comments = kv.comments
	}
}

func (a *entryAssembler) drop(kv keyValue) {
	a.logger.Debug().
		Str("key", kv.key).
		Str("value", kv.value).
		Msg("Dropping key with no open entry")
}
