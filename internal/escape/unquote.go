// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles decoding of JSON string escapes.
package escape

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the JSON encoding of a string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A UTF-16
// surrogate pair written as two \u escapes decodes to a single rune. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) (string, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil
	}

	var dec strings.Builder
	dec.Grow(src.Len())
	for {
		dec.WriteString(src.SliceTo(i).StringCopy())

		// Decode the rune after the escape to figure out what to substitute.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))
		switch r {
		case '"', '\\', '/':
			dec.WriteRune(r)
		case 'b':
			dec.WriteByte('\b')
		case 'f':
			dec.WriteByte('\f')
		case 'n':
			dec.WriteByte('\n')
		case 'r':
			dec.WriteByte('\r')
		case 't':
			dec.WriteByte('\t')
		case 'u':
			v, rest, err := parseUnicode(src)
			if err != nil {
				return "", err
			}
			dec.WriteRune(v)
			src = rest
		default:
			dec.WriteRune(utf8.RuneError)
		}

		// Look for the next escape sequence; if there is none we can copy
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec.WriteString(src.StringCopy())
			return dec.String(), nil
		}
	}
}

// parseUnicode decodes the hex digits of a \u escape at the front of src,
// together with the low half of a surrogate pair if one follows. It returns
// the decoded rune and the remaining input.
func parseUnicode(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceTo(4))
	src = src.SliceFrom(4)
	if err != nil {
		return utf8.RuneError, src, nil
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, src, nil
	}

	// A high surrogate must be followed by \uXXXX with a low surrogate.
	// Otherwise the lone half is invalid, and the input after it is left
	// alone to be decoded normally.
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if lo, err := parseHex(src.Slice(2, 6)); err == nil {
			if p := utf16.DecodeRune(r, rune(lo)); p != utf8.RuneError {
				return p, src.SliceFrom(6), nil
			}
		}
	}
	return utf8.RuneError, src, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
