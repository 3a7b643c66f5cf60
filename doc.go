// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a JSON tokenizer and the grammar engine used to
// parse JSON text into value trees.
//
// # Tokenizing
//
// Tokenize converts JSON text into a flat sequence of Item values. Each item
// records the type of a token, its payload, and the position where it begins:
//
//	items, err := jvalue.Tokenize(`{"a": [1, true]}`)
//	if err != nil {
//	   log.Fatalf("Tokenize failed: %v", err)
//	}
//
// For finer control, construct a Tokenizer and call its Next method to iterate
// over the input. Next returns io.EOF when the input has been fully consumed:
//
//	t := jvalue.NewTokenizer(mem.S(input))
//	for t.Next() == nil {
//	   log.Printf("Next token: %v at %v", t.Item(), t.Item().Pos)
//	}
//
// # Streaming
//
// The Stream type checks the grammar of a token sequence and reports its
// structure to a Handler:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The stream does not recurse: nesting is tracked on an explicit stack, whose
// depth may be limited with LimitDepth.
//
// # Errors
//
// Lexical and structural errors are reported as values of concrete type
// *SyntaxError, whose Kind field says what went wrong and whose Pos field says
// where. Each ErrorKind is itself an error, so a caller may write:
//
//	if errors.Is(err, jvalue.NoTokens) {
//	   log.Print("Input was empty")
//	}
//
// To build value trees from JSON text, see package ast.
package jvalue
