// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"io"
	"strconv"

	"go4.org/mem"
)

// Tokenize scans input into a sequence of tokens. It returns the first
// lexical error found, if any. An empty or all-whitespace input yields an
// empty sequence and no error.
func Tokenize(input string) ([]Item, error) { return NewTokenizer(mem.S(input)).All() }

// TokenizeBytes is as Tokenize, for input given as bytes.
func TokenizeBytes(input []byte) ([]Item, error) { return NewTokenizer(mem.B(input)).All() }

// A Tokenizer reads lexical tokens from an input.  Each call to Next advances
// the tokenizer to the next token, or reports an error.
type Tokenizer struct {
	src  mem.RO
	cur  Pos // position of the next unread character
	item Item
	err  error
}

// NewTokenizer constructs a new tokenizer that consumes input from src.
func NewTokenizer(src mem.RO) *Tokenizer { return &Tokenizer{src: src} }

// Next advances t to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (t *Tokenizer) Next() error {
	t.item = Item{}
	t.err = nil
	for {
		pos := t.cur
		ch, ok := t.rune()
		if !ok {
			return t.setErr(io.EOF)
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Handle punctuation.
		if tok, ok := selfDelim(ch); ok {
			t.item = Item{Token: tok, Pos: pos}
			return nil
		}

		switch {
		case ch == '"':
			return t.scanString(pos)
		case isNumStart(ch):
			return t.scanNumber(pos)
		case ch == 't':
			return t.scanConstant(True, pos)
		case ch == 'f':
			return t.scanConstant(False, pos)
		case ch == 'n':
			return t.scanConstant(Null, pos)
		}
		return t.fail(&SyntaxError{Kind: UnexpectedCharacter, Pos: t.cur, Got: ch})
	}
}

// All consumes the rest of the input and returns the tokens it contains.
// After All returns successfully, Pos reports the end of the input.
func (t *Tokenizer) All() ([]Item, error) {
	var items []Item
	for {
		err := t.Next()
		if err == io.EOF {
			return items, nil
		} else if err != nil {
			return nil, err
		}
		items = append(items, t.item)
	}
}

// Item returns the current token.
func (t *Tokenizer) Item() Item { return t.item }

// Err returns the last error reported by Next.
func (t *Tokenizer) Err() error { return t.err }

// Pos returns the position of the next unread character of the input.
func (t *Tokenizer) Pos() Pos { return t.cur }

func (t *Tokenizer) scanString(start Pos) error {
	begin := t.cur.Offset
	for {
		pos := t.cur
		ch, ok := t.rune()
		if !ok {
			return t.fail(badChar(String, pos, 0, true))
		} else if ch == '"' {
			t.item = Item{
				Token: String,
				Text:  t.src.Slice(begin, pos.Offset).StringCopy(),
				Pos:   start,
			}
			return nil
		} else if ch != '\\' {
			continue
		}

		// We are awaiting the completion of a \-escape.
		ch, ok = t.rune()
		if !ok {
			return t.fail(badChar(String, t.cur, 0, true))
		}
		switch ch {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		case 'u':
			if err := t.readHex4(); err != nil {
				return err
			}
		default:
			return t.fail(badChar(String, t.cur, ch, false))
		}
	}
}

// scanNumber consumes the longest run of characters that may occur in a
// number. The run is not checked for well-formedness; that is left to the
// float parser.
func (t *Tokenizer) scanNumber(start Pos) error {
	for {
		ch, n := t.peek()
		if n == 0 || !isNumRune(ch) {
			break
		}
		t.rune()
	}
	text := t.src.Slice(start.Offset, t.cur.Offset)
	v, err := mem.ParseFloat(text, 64)
	if err != nil {
		msg := err.Error()
		var nerr *strconv.NumError
		if errors.As(err, &nerr) {
			msg = nerr.Err.Error()
		}
		return t.fail(&SyntaxError{
			Kind:    ParsingNumber,
			Pos:     start,
			Text:    text.StringCopy(),
			Message: msg,
			err:     err,
		})
	}
	t.item = Item{Token: Number, Num: v, Pos: start}
	return nil
}

// scanConstant matches the remainder of the constant tok, whose first
// character has already been consumed.
func (t *Tokenizer) scanConstant(tok Token, start Pos) error {
	for _, want := range tok.String()[1:] {
		ch, ok := t.rune()
		if !ok {
			return t.fail(badChar(tok, t.cur, 0, true))
		} else if ch != want {
			return t.fail(badChar(tok, t.cur, ch, false))
		}
	}
	t.item = Item{Token: tok, Pos: start}
	return nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (t *Tokenizer) readHex4() error {
	for range 4 {
		ch, ok := t.rune()
		if !ok {
			return t.fail(badChar(String, t.cur, 0, true))
		} else if !isHexDigit(ch) {
			return t.fail(badChar(String, t.cur, ch, false))
		}
	}
	return nil
}

// rune consumes and returns the next character of the input, reporting
// false if the input is exhausted.
func (t *Tokenizer) rune() (rune, bool) {
	ch, n := t.peek()
	if n == 0 {
		return 0, false
	}
	t.cur = t.cur.advance(ch, n)
	return ch, true
}

// peek returns the next character of the input and its length in bytes,
// without consuming it. At the end of input the length is 0.
func (t *Tokenizer) peek() (rune, int) {
	if t.cur.Offset >= t.src.Len() {
		return 0, 0
	}
	return mem.DecodeRune(t.src.SliceFrom(t.cur.Offset))
}

// badChar reports an unexpected character. The position is that of the
// cursor when the error is found: just past got, or at the end of input.
func badChar(want Token, pos Pos, got rune, eof bool) *SyntaxError {
	return &SyntaxError{
		Kind:     UnexpectedCharacter,
		Pos:      pos,
		Expected: want,
		Got:      got,
		AtEOF:    eof,
	}
}

func (t *Tokenizer) setErr(err error) error {
	t.err = err
	return err
}

func (t *Tokenizer) fail(err *SyntaxError) error { return t.setErr(err) }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

func isNumRune(ch rune) bool {
	return isDigit(ch) || ch == '.' || ch == 'e' || ch == 'E' || ch == '+' || ch == '-'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
