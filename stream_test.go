// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func mustStream(t *testing.T, input string) *jvalue.Stream {
	t.Helper()
	tz := jvalue.NewTokenizer(mem.S(input))
	items, err := tz.All()
	if err != nil {
		t.Fatalf("Tokenize %#q: %v", input, err)
	}
	return jvalue.NewStream(items, tz.Pos())
}

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value number <0>
Value number <5>
Value number <-6.32>
Value number <0.001>
.`},

		{`"" "a b c" "a\tb" "a b"`, `
Value string <>
Value string <a b c>
Value string <a\tb>
Value string <a b>
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <a>
Value number <15>
EndMember }
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <x>
Value null <null>
EndMember ,
BeginMember <y>
BeginArray
Value true <true>
EndArray
EndMember }
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},

		{`[[1], {}, [[]]]`, `
BeginArray
BeginArray
Value number <1>
EndArray
BeginObject
EndObject
BeginArray
BeginArray
EndArray
EndArray
EndArray
.`},
	}

	for _, test := range tests {
		st := mustStream(t, test.input)
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject`,
			`at 0:1: unterminated object opened at 0:0`},
		{`}`, ``, `at 0:0: unexpected "}"`},
		{`{false:1}`, `BeginObject`,
			`at 0:1: unexpected "false"`},
		{`{"true":}`, `
BeginObject
BeginMember <true>`,
			`at 0:8: unexpected "}"`},
		{`{"true":1,`, `
BeginObject
BeginMember <true>
Value number <1>
EndMember ,`,
			`at 0:10: unterminated object opened at 0:0`},
		{`{"a" 1}`, `
BeginObject
BeginMember <a>`,
			`at 0:5: unexpected number 1`},
		{`{"a"`, `
BeginObject
BeginMember <a>`,
			`at 0:4: unterminated object opened at 0:0`},
		{`{"a":1,}`, `
BeginObject
BeginMember <a>
Value number <1>
EndMember ,`,
			`at 0:7: unexpected "}"`},
		{`{"a":1 "b":2}`, `
BeginObject
BeginMember <a>
Value number <1>`,
			`at 0:7: unexpected string "b"`},
		{`{,"a":1}`, `BeginObject`,
			`at 0:1: unexpected ","`},

		// Unbalanced array bits.
		{`[`, `BeginArray`,
			`at 0:1: unterminated array opened at 0:0`},
		{`]`, ``, `at 0:0: unexpected "]"`},
		{`[15,`, `
BeginArray
Value number <15>`,
			`at 0:4: unterminated array opened at 0:0`},
		{`[15,]`, `
BeginArray
Value number <15>`,
			`at 0:4: unexpected "]"`},
		{`[,1]`, `BeginArray`,
			`at 0:1: unexpected ","`},
		{`[1,,2]`, `
BeginArray
Value number <1>`,
			`at 0:3: unexpected ","`},
		{`[1 2]`, `
BeginArray
Value number <1>`,
			`at 0:3: unexpected number 2`},
		{`[1:2]`, `
BeginArray
Value number <1>`,
			`at 0:2: unexpected ":"`},
		{`[[1]`, `
BeginArray
BeginArray
Value number <1>
EndArray`,
			`at 0:4: unterminated array opened at 0:0`},
		{"{\"a\":\n  [", `
BeginObject
BeginMember <a>
BeginArray`,
			`at 1:3: unterminated array opened at 1:2`},

		// Separators in value position.
		{`,`, ``, `at 0:0: unexpected ","`},
		{`:`, ``, `at 0:0: unexpected ":"`},
		{`1 2.0 ]`, `
Value number <1>
Value number <2>`,
			`at 0:6: unexpected "]"`},
	}

	for _, test := range tests {
		st := mustStream(t, test.input)
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Errorf("Input: %#q\nParse did not report an error", test.input)
			continue
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <love>
Value true <true>
EndMember }
EndObject
---
BeginArray
EndArray
---
Value string <ok>
---
.`
	th := new(testHandler)

	st := mustStream(t, input)
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func TestParseSingle(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		th := new(testHandler)
		if err := mustStream(t, " [true] ").ParseSingle(th); err != nil {
			t.Fatalf("ParseSingle failed: %v", err)
		}
		const want = "BeginArray\nValue true <true>\nEndArray\n."
		if diff := diffStrings(want, th.output()); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})

	tests := []struct {
		input string
		kind  jvalue.ErrorKind
		estr  string
	}{
		{"", jvalue.NoTokens, "at 0:0: no tokens"},
		{"  \n ", jvalue.NoTokens, "at 1:1: no tokens"},
		{"1 2", jvalue.UnexpectedToken, "at 0:2: unexpected number 2"},
		{"{} []", jvalue.UnexpectedToken, `at 0:3: unexpected "["`},
	}
	for _, test := range tests {
		err := mustStream(t, test.input).ParseSingle(new(testHandler))
		if !errors.Is(err, test.kind) {
			t.Errorf("Input: %#q\nParseSingle: got %v, want %v", test.input, err, test.kind)
		} else if got := err.Error(); got != test.estr {
			t.Errorf("Input: %#q\nError: got %q, want %q", test.input, got, test.estr)
		}
	}
}

func TestLoneSeparators(t *testing.T) {
	for _, tok := range []jvalue.Token{jvalue.RBrace, jvalue.RSquare, jvalue.Comma, jvalue.Colon} {
		err := mustStream(t, tok.String()).ParseSingle(new(testHandler))
		var serr *jvalue.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input %q: got %v, want *SyntaxError", tok, err)
			continue
		}
		want := &jvalue.SyntaxError{Kind: jvalue.UnexpectedToken, Token: &jvalue.Item{Token: tok}}
		if diff := cmp.Diff(want, serr, cmp.AllowUnexported(jvalue.SyntaxError{})); diff != "" {
			t.Errorf("Input %q: (-want, +got)\n%s", tok, diff)
		}
	}
}

func TestLimitDepth(t *testing.T) {
	t.Run("Within", func(t *testing.T) {
		st := mustStream(t, testutil.Nested(3))
		st.LimitDepth(3)
		if err := st.Parse(new(depthHandler)); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
	})
	t.Run("Beyond", func(t *testing.T) {
		st := mustStream(t, testutil.Nested(3))
		st.LimitDepth(2)
		err := st.Parse(new(depthHandler))
		if !errors.Is(err, jvalue.TooDeep) {
			t.Fatalf("Parse: got %v, want %v", err, jvalue.TooDeep)
		}
		if got, want := err.Error(), "at 0:2: nesting depth exceeds 2"; got != want {
			t.Errorf("Error: got %q, want %q", got, want)
		}
	})
	t.Run("Unlimited", func(t *testing.T) {
		const depth = 200000
		st := mustStream(t, testutil.Nested(depth))
		dh := new(depthHandler)
		if err := st.Parse(dh); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if dh.max != depth {
			t.Errorf("Max depth: got %d, want %d", dh.max, depth)
		}
	})
}

func TestHandlerError(t *testing.T) {
	errStop := errors.New("stop")
	st := mustStream(t, `[1, 2, 3]`)
	h := &stopHandler{stopAt: 2, err: errStop}
	if err := st.Parse(h); err != errStop {
		t.Errorf("Parse: got %v, want %v", err, errStop)
	}
	if h.seen != 2 {
		t.Errorf("Values seen: got %d, want 2", h.seen)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(jvalue.Item) error { t.pr("BeginObject"); return nil }
func (t *testHandler) EndObject(jvalue.Item) error   { t.pr("EndObject"); return nil }
func (t *testHandler) BeginArray(jvalue.Item) error  { t.pr("BeginArray"); return nil }
func (t *testHandler) EndArray(jvalue.Item) error    { t.pr("EndArray"); return nil }
func (t *testHandler) EndOfInput(jvalue.Pos)         { t.pr(".") }

func (t *testHandler) BeginMember(key jvalue.Item) error {
	t.pr("BeginMember <%s>", key)
	return nil
}

func (t *testHandler) EndMember(tok jvalue.Item) error {
	t.pr("EndMember %s", tok.Token)
	return nil
}

func (t *testHandler) Value(v jvalue.Item) error {
	t.pr(`Value %s <%s>`, v.Token, v)
	return nil
}

// depthHandler records the maximum nesting depth of its input.
type depthHandler struct {
	cur, max int
}

func (d *depthHandler) begin() error {
	d.cur++
	d.max = max(d.max, d.cur)
	return nil
}

func (d *depthHandler) end() error { d.cur--; return nil }

func (d *depthHandler) BeginObject(jvalue.Item) error { return d.begin() }
func (d *depthHandler) EndObject(jvalue.Item) error   { return d.end() }
func (d *depthHandler) BeginArray(jvalue.Item) error  { return d.begin() }
func (d *depthHandler) EndArray(jvalue.Item) error    { return d.end() }
func (d *depthHandler) BeginMember(jvalue.Item) error { return nil }
func (d *depthHandler) EndMember(jvalue.Item) error   { return nil }
func (d *depthHandler) Value(jvalue.Item) error       { return nil }
func (d *depthHandler) EndOfInput(jvalue.Pos)         {}

// stopHandler reports err from Value once it has seen stopAt values.
type stopHandler struct {
	depthHandler
	stopAt, seen int
	err          error
}

func (s *stopHandler) Value(jvalue.Item) error {
	s.seen++
	if s.seen >= s.stopAt {
		return s.err
	}
	return nil
}
