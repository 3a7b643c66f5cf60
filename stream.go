// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import "io"

// A Handler handles events from parsing a token stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The stream ensures objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object, whose open brace is tok.
	BeginObject(tok Item) error

	// End the most-recently-opened object, whose close brace is tok.
	EndObject(tok Item) error

	// Begin a new array, whose open bracket is tok.
	BeginArray(tok Item) error

	// End the most-recently-opened array, whose close bracket is tok.
	EndArray(tok Item) error

	// Begin a new object member, whose key is tok. The key text is raw; the
	// handler is responsible for decoding escapes (see Unescape).
	BeginMember(key Item) error

	// End the current object member giving the token that terminated the
	// member (either Comma or RBrace).
	EndMember(tok Item) error

	// Report a string, number, or constant value.
	Value(tok Item) error

	// EndOfInput reports the end of the input at the given position.
	EndOfInput(end Pos)
}

// Stream is a stream parser that consumes a token sequence and delivers
// events to a Handler corresponding with the structure of the input.
type Stream struct {
	items    []Item
	next     int // offset of the lookahead token in items
	end      Pos // position of the end of input
	maxDepth int // if positive, the limit on nesting depth
}

// NewStream constructs a new Stream that consumes the given tokens. The end
// position is reported in errors that occur at the end of the input.
func NewStream(items []Item, end Pos) *Stream { return &Stream{items: items, end: end} }

// LimitDepth configures the stream to reject objects and arrays nested more
// than n deep. If n ≤ 0, nesting is not limited.
func (s *Stream) LimitDepth(n int) { s.maxDepth = n }

// Peek returns the next unconsumed token, and reports false if none remain.
func (s *Stream) Peek() (Item, bool) {
	if s.next < len(s.items) {
		return s.items[s.next], true
	}
	return Item{}, false
}

// Parse parses all the values in the stream and delivers events to h until
// either an error occurs or the input is exhausted.
func (s *Stream) Parse(h Handler) error {
	for {
		if err := s.ParseOne(h); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the stream and delivers events to h
// until the value is complete or an error occurs. If no further tokens are
// available, ParseOne calls h.EndOfInput and returns io.EOF.
func (s *Stream) ParseOne(h Handler) error {
	if _, ok := s.Peek(); !ok {
		h.EndOfInput(s.end)
		return io.EOF
	}
	return s.parseValue(h)
}

// ParseSingle parses exactly one value from the stream. It reports NoTokens
// if the stream is empty, and UnexpectedToken if any tokens remain after the
// value.
func (s *Stream) ParseSingle(h Handler) error {
	if err := s.ParseOne(h); err == io.EOF {
		return &SyntaxError{Kind: NoTokens, Pos: s.end}
	} else if err != nil {
		return err
	}
	if it, ok := s.Peek(); ok {
		return unexpectedToken(it)
	}
	h.EndOfInput(s.end)
	return nil
}

type state byte

const (
	expectValue state = iota // any value
	arrayFirst               // after "[": a value or "]"
	arrayNext                // after an element: "," or "]"
	objectFirst              // after "{": a key or "}"
	objectKey                // after ",": a key
	objectColon              // after a key: ":"
	objectNext               // after a member value: "," or "}"
)

// parseValue consumes a single value of any type.
//
// Objects and arrays are tracked on an explicit stack of their opening
// tokens, so the depth of nesting does not affect the call stack.
func (s *Stream) parseValue(h Handler) error {
	var stk []Item
	st := expectValue
	for {
		switch st {
		case expectValue:
			it, ok := s.advance()
			if !ok {
				return s.endOfInput(stk)
			}
			switch it.Token {
			case LBrace, LSquare:
				if s.maxDepth > 0 && len(stk) >= s.maxDepth {
					return &SyntaxError{Kind: TooDeep, Pos: it.Pos, Limit: s.maxDepth}
				}
				stk = append(stk, it)
				var err error
				if it.Token == LBrace {
					st = objectFirst
					err = h.BeginObject(it)
				} else {
					st = arrayFirst
					err = h.BeginArray(it)
				}
				if err != nil {
					return err
				}
				continue
			case String, Number, True, False, Null:
				if err := h.Value(it); err != nil {
					return err
				}
			default:
				return unexpectedToken(it)
			}

		case arrayFirst:
			// Elements may be objects or arrays, so "[[1]]" and "[{}]" are valid.
			if it, ok := s.Peek(); !ok || it.Token != RSquare {
				st = expectValue
				continue
			}
			fallthrough

		case arrayNext:
			it, ok := s.advance()
			if !ok {
				return s.endOfInput(stk)
			}
			switch it.Token {
			case Comma:
				st = expectValue
				continue
			case RSquare:
				stk = stk[:len(stk)-1]
				if err := h.EndArray(it); err != nil {
					return err
				}
			default:
				return unexpectedToken(it)
			}

		case objectFirst, objectKey:
			it, ok := s.advance()
			if !ok {
				return s.endOfInput(stk)
			}
			switch {
			case it.Token == String:
				if err := h.BeginMember(it); err != nil {
					return err
				}
				st = objectColon
				continue
			case it.Token == RBrace && st == objectFirst:
				stk = stk[:len(stk)-1]
				if err := h.EndObject(it); err != nil {
					return err
				}
			default:
				return unexpectedToken(it)
			}

		case objectColon:
			it, ok := s.advance()
			if !ok {
				return s.endOfInput(stk)
			} else if it.Token != Colon {
				return unexpectedToken(it)
			}
			st = expectValue
			continue

		case objectNext:
			it, ok := s.advance()
			if !ok {
				return s.endOfInput(stk)
			} else if it.Token != Comma && it.Token != RBrace {
				return unexpectedToken(it)
			}
			if err := h.EndMember(it); err != nil {
				return err
			}
			if it.Token == Comma {
				st = objectKey
				continue
			}
			stk = stk[:len(stk)-1]
			if err := h.EndObject(it); err != nil {
				return err
			}
		}

		// Reaching here, a complete value has been consumed. Resume the
		// enclosing object or array, if there is one.
		if len(stk) == 0 {
			return nil
		} else if stk[len(stk)-1].Token == LSquare {
			st = arrayNext
		} else {
			st = objectNext
		}
	}
}

// advance consumes and returns the next token, reporting false if none remain.
func (s *Stream) advance() (Item, bool) {
	it, ok := s.Peek()
	if ok {
		s.next++
	}
	return it, ok
}

// endOfInput reports an error for input that ended while a value was still
// incomplete. The stack holds the tokens opening the enclosing structures.
func (s *Stream) endOfInput(stk []Item) error {
	if len(stk) == 0 {
		return &SyntaxError{Kind: UnexpectedToken, Pos: s.end}
	}
	return &SyntaxError{Kind: Unterminated, Pos: s.end, Open: stk[len(stk)-1]}
}
