// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies a SyntaxError. An ErrorKind is also an error, so that
// errors.Is(err, k) reports whether err is a *SyntaxError of kind k.
type ErrorKind byte

// Constants defining the kinds of syntax error.
const (
	ParsingNumber       ErrorKind = iota + 1 // a numeric literal is not a valid float64
	UnexpectedCharacter                      // a character cannot begin or continue a token
	UnexpectedToken                          // a token is out of place, or input ended early
	NoTokens                                 // the input contains no tokens
	Unterminated                             // input ended inside an object or array
	TooDeep                                  // nesting exceeds the depth limit
)

var kindStr = [...]string{
	0:                   "unknown error",
	ParsingNumber:       "invalid number",
	UnexpectedCharacter: "unexpected character",
	UnexpectedToken:     "unexpected token",
	NoTokens:            "no tokens",
	Unterminated:        "unterminated structure",
	TooDeep:             "nesting too deep",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the tokenizer and
// the stream parser. Which of the optional fields are set depends on Kind.
type SyntaxError struct {
	Kind ErrorKind
	Pos  Pos

	// ParsingNumber: the text of the literal and the parse diagnostic.
	Text    string
	Message string

	// UnexpectedCharacter: the constant or string being scanned (Invalid if
	// none) and the character found in its place. AtEOF is set instead of Got
	// if the input ended.
	Expected Token
	Got      rune
	AtEOF    bool

	// UnexpectedToken: the offending token, or nil at the end of input.
	Token *Item

	// Unterminated: the token that opened the unclosed object or array.
	Open Item

	// TooDeep: the depth limit in effect.
	Limit int

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Pos, e.describe())
}

func (e *SyntaxError) describe() string {
	switch e.Kind {
	case ParsingNumber:
		return fmt.Sprintf("invalid number %q: %s", e.Text, e.Message)
	case UnexpectedCharacter:
		got := "end of input"
		if !e.AtEOF {
			got = strconv.QuoteRune(e.Got)
		}
		if e.Expected == Invalid {
			return "unexpected " + got
		}
		return fmt.Sprintf("unexpected %s in %s", got, e.Expected)
	case UnexpectedToken:
		if e.Token == nil {
			return "unexpected end of input"
		}
		return "unexpected " + e.Token.label()
	case Unterminated:
		what := "array"
		if e.Open.Token == LBrace {
			what = "object"
		}
		return fmt.Sprintf("unterminated %s opened at %s", what, e.Open.Pos)
	case TooDeep:
		return fmt.Sprintf("nesting depth exceeds %d", e.Limit)
	default:
		return e.Kind.String()
	}
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Is reports whether target is the ErrorKind of e.
func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func unexpectedToken(it Item) *SyntaxError {
	return &SyntaxError{Kind: UnexpectedToken, Pos: it.Pos, Token: &it}
}
