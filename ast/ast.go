// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree representation for JSON values, and a parser
// that constructs trees from JSON source.
//
// A tree produced by the parser is owned by the caller: each Array and Object
// exclusively owns its children, and no part of a tree is shared with any
// other result.
package ast

import (
	"maps"
	"slices"
)

// Kind identifies the variant of a Value.
type Kind byte

// Constants defining the kinds of Value.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The concrete type is one of Null, Bool,
// Number, String, Array, or Object.
type Value interface {
	Kind() Kind
}

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

// A Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// A Number is a numeric value.
type Number float64

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

// A String is a string value, with escapes decoded.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Array is a sequence of values.
type Array []Value

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return ArrayKind }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is a collection of key-value members. Keys are unique; the order
// of members in the source text is not preserved.
type Object map[string]Value

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return ObjectKind }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Keys returns the keys of o in lexicographic order.
func (o Object) Keys() []string { return slices.Sorted(maps.Keys(o)) }

// Equal reports whether a and b are structurally equal: they have the same
// kind, and equal contents.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		return ok && slices.EqualFunc(x, y, Equal)
	case Object:
		y, ok := b.(Object)
		return ok && maps.EqualFunc(x, y, Equal)
	default:
		return false
	}
}
