// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog turns parsed .po tables into message catalogues that
translate source message IDs (msgids), with support for both context and
plural forms.

# Quick start

Load one or more catalogues through a [Loader] and translate with:

	cat.Get("Are you sure you want to quit?")
	cat.GetC("menu", "Open") // disambiguation via context
	cat.GetN("{{.Count}} file", "{{.Count}} files", n, "Count", n)
	cat.GetNC("menu", "{{.Count}} item", "{{.Count}} items", n, "Count", n)

Plural forms are selected by the catalogue's Plural-Forms header. When
the header is missing or its expression does not compile, the germanic
rule "n != 1" is used.

# Missing translations

Missing or empty translations return the msgid, or the plural msgid when
n != 1. In strict mode missing lookups are logged once per language and
key, and the returned text is visibly wrapped as "⟦...⟧".

# Formatting

Translations may contain text/template placeholders. Substitutions are
given as alternating key-value pairs:

	cat.Get("Welcome, {{.Name}}!", "Name", user.Name)

# Flattening

[Flatten] reduces a table to a plain msgid to msgstr map of the default
context, the shape expected by message-format compilers.
*/
package catalog
