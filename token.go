// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"strconv"
	"strings"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	String               // quoted string
	Number               // number
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  "{",
	RBrace:  "}",
	LSquare: "[",
	RSquare: "]",
	Comma:   ",",
	Colon:   ":",
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",
}

// String returns the canonical text of t. For the constants and punctuation
// this is the literal source text of the token; for strings and numbers it is
// the name of the type.
func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// An Item is a single token of the input together with its payload and the
// position of its first character.
type Item struct {
	Token Token
	Text  string  // String: the raw text between the quotes, escapes intact
	Num   float64 // Number: the parsed value
	Pos   Pos
}

// String renders the canonical text of the item. A string renders as its raw
// text without quotation marks, and a number in plain decimal notation.
func (it Item) String() string {
	switch it.Token {
	case String:
		return it.Text
	case Number:
		return strconv.FormatFloat(it.Num, 'f', -1, 64)
	default:
		return it.Token.String()
	}
}

// label renders the item for use in a diagnostic.
func (it Item) label() string {
	switch it.Token {
	case String:
		return "string " + strconv.Quote(it.Text)
	case Number:
		return "number " + it.String()
	default:
		return strconv.Quote(it.Token.String())
	}
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
