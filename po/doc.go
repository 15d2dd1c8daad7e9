// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package po parses GNU gettext .po catalogues into a queryable translation table.

Parsing runs as a fixed pipeline of single-pass stages:

	lex -> join adjacent tokens -> classify comments -> pair keys with values
	    -> assemble entries -> normalise into a Table

The parser is tolerant. Malformed or truncated catalogues never cause an error;
unterminated strings and comments are closed at end of input and orphan strings
or msgstr keys are dropped. The only error [Parse] can return comes from the
charset decoder that runs before lexing when the input is raw bytes.

# Usage

	table, err := po.Parse(data)
	if err != nil {
		return err
	}

	if entry, ok := table.Lookup("menu", "File"); ok {
		fmt.Println(entry.MsgStr[0])
	}

Text that is already decoded can be passed to [ParseString], which assumes UTF-8
and never fails.

A Table and everything reachable from it is owned by the caller. Separate calls
share no state and may run concurrently.
*/
package po
