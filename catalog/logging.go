// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	// Logger is the logger used by package catalog.
	Logger = zerolog.Nop()

	// missingKeyOnce deduplicates WARN logs for missing msgids in strict mode.
	// The key is language+"\x00"+msgid.
	missingKeyOnce sync.Map

	// renderErrorOnce deduplicates WARN logs for msgstrs that fail to render.
	// The key is language+"\x00"+text.
	renderErrorOnce sync.Map
)

// eotSeparator joins a context and msgid into a single key, as gettext does.
const eotSeparator = "\x04"

// logMissingOnce logs a missing translation warning once per (language, msgid) pair.
func logMissingOnce(lang, key string) {
	id := lang + "\x00" + key
	if _, loaded := missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("language", lang).
			Str("key", key).
			Msg("Missing translation")
	}
}

// logRenderErrorOnce logs a template failure once per (language, text) pair.
func logRenderErrorOnce(lang, text string, err error, msg string) {
	id := lang + "\x00" + text
	if _, loaded := renderErrorOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Err(err).
			Str("language", lang).
			Str("text", text).
			Msg(msg)
	}
}

// buildLogKey composes the logging key like gettext "ctx<sep>msgid" when context is present.
func buildLogKey(ctxKey, id string) string {
	if ctxKey != "" {
		return ctxKey + eotSeparator + id
	}

	return id
}
