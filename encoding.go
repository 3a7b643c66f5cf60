// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Unescape decodes the raw text of a string token, as stored in the Text
// field of an Item. Escape sequences are replaced with their unescaped
// equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unescape
// reports an error for an incomplete escape sequence.
func Unescape(raw string) (string, error) { return escape.Unquote(mem.S(raw)) }
