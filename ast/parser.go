// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"

	"github.com/creachadair/jvalue"
	"go4.org/mem"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Options control the behavior of the parser. A nil *Options is ready for
// use and provides default settings.
type Options struct {
	// The maximum depth of nested objects and arrays. If zero, it defaults to
	// DefaultMaxDepth; if negative, nesting is limited only by memory.
	MaxDepth int

	// If true, string values and object keys keep the raw text from between
	// their quotation marks, and escape sequences are not decoded.
	RawStrings bool
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) rawStrings() bool { return o != nil && o.RawStrings }

// Parse parses a single JSON value from input using default options.
// It is shorthand for a nil *Options.
func Parse(input string) (Value, error) { return (*Options)(nil).Parse(input) }

// ParseBytes parses a single JSON value from input using default options.
func ParseBytes(input []byte) (Value, error) { return (*Options)(nil).ParseBytes(input) }

// ParseAll parses a sequence of zero or more JSON values from input using
// default options.
func ParseAll(input string) ([]Value, error) { return (*Options)(nil).ParseAll(input) }

// MustParse parses a single JSON value from input, and panics if parsing
// fails. It is intended for inputs known to be valid, such as constants.
func MustParse(input string) Value {
	v, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("ast.MustParse: %v", err))
	}
	return v
}

// Parse parses and returns a single JSON value from input.  The input must
// contain exactly one value; in case of error the concrete type of the error
// is *jvalue.SyntaxError.
func (o *Options) Parse(input string) (Value, error) { return o.parseSingle(mem.S(input)) }

// ParseBytes is as Parse, for input given as bytes.
func (o *Options) ParseBytes(input []byte) (Value, error) { return o.parseSingle(mem.B(input)) }

// ParseAll parses and returns all the JSON values in input. In case of error,
// any complete values already parsed are returned along with the error.
func (o *Options) ParseAll(input string) ([]Value, error) {
	st, err := o.newStream(mem.S(input))
	if err != nil {
		return nil, err
	}
	h := &parseHandler{raw: o.rawStrings()}
	var vs []Value
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, h.out)
	}
}

func (o *Options) parseSingle(src mem.RO) (Value, error) {
	st, err := o.newStream(src)
	if err != nil {
		return nil, err
	}
	h := &parseHandler{raw: o.rawStrings()}
	if err := st.ParseSingle(h); err != nil {
		return nil, err
	}
	return h.out, nil
}

// newStream tokenizes src and returns a stream over the resulting tokens.
func (o *Options) newStream(src mem.RO) (*jvalue.Stream, error) {
	t := jvalue.NewTokenizer(src)
	items, err := t.All()
	if err != nil {
		return nil, err
	}
	st := jvalue.NewStream(items, t.Pos())
	if d := o.maxDepth(); d > 0 {
		st.LimitDepth(d)
	}
	return st, nil
}

// A parseHandler implements the jvalue.Handler interface to construct trees
// for JSON values.
type parseHandler struct {
	raw bool    // do not decode string escapes
	stk []frame // open objects and arrays, innermost last
	out Value   // the most recently completed top-level value
}

// A frame is an object or array under construction.
type frame struct {
	obj Object // if non-nil, the frame is an object
	arr Array
	key string // the key of the current object member
}

func (f frame) value() Value {
	if f.obj != nil {
		return f.obj
	}
	return f.arr
}

// reduce adds a completed value to the enclosing frame, or records it as the
// result if there is none. Object members with the same key replace earlier
// ones.
func (h *parseHandler) reduce(v Value) {
	if len(h.stk) == 0 {
		h.out = v
		return
	}
	top := &h.stk[len(h.stk)-1]
	if top.obj != nil {
		top.obj[top.key] = v
	} else {
		top.arr = append(top.arr, v)
	}
}

func (h *parseHandler) pop() frame {
	last := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(f frame) { h.stk = append(h.stk, f) }

func (h *parseHandler) text(it jvalue.Item) (string, error) {
	if h.raw {
		return it.Text, nil
	}
	s, err := jvalue.Unescape(it.Text)
	if err != nil {
		return "", fmt.Errorf("at %v: invalid string: %w", it.Pos, err)
	}
	return s, nil
}

func (h *parseHandler) BeginObject(jvalue.Item) error {
	h.push(frame{obj: make(Object)})
	return nil
}

func (h *parseHandler) EndObject(jvalue.Item) error {
	h.reduce(h.pop().value())
	return nil
}

func (h *parseHandler) BeginArray(jvalue.Item) error {
	h.push(frame{arr: Array{}})
	return nil
}

func (h *parseHandler) EndArray(jvalue.Item) error {
	h.reduce(h.pop().value())
	return nil
}

func (h *parseHandler) BeginMember(key jvalue.Item) error {
	k, err := h.text(key)
	if err != nil {
		return err
	}
	h.stk[len(h.stk)-1].key = k
	return nil
}

func (h *parseHandler) EndMember(jvalue.Item) error { return nil }

func (h *parseHandler) Value(it jvalue.Item) error {
	switch it.Token {
	case jvalue.String:
		s, err := h.text(it)
		if err != nil {
			return err
		}
		h.reduce(String(s))
	case jvalue.Number:
		h.reduce(Number(it.Num))
	case jvalue.True, jvalue.False:
		h.reduce(Bool(it.Token == jvalue.True))
	case jvalue.Null:
		h.reduce(Null{})
	default:
		return fmt.Errorf("unknown value %v", it.Token)
	}
	return nil
}

func (h *parseHandler) EndOfInput(jvalue.Pos) {}
