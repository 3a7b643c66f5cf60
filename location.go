// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import "fmt"

// A Pos describes the location of a character in source text.
type Pos struct {
	Offset int // byte offset, 0-based
	Row    int // line number, 0-based
	Column int // character offset within the line, 0-based
}

// String renders p as "row:col".
func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Row, p.Column) }

// advance returns the position following p after consuming ch, whose UTF-8
// encoding is n bytes long.
func (p Pos) advance(ch rune, n int) Pos {
	p.Offset += n
	if ch == '\n' {
		p.Row++
		p.Column = 0
	} else {
		p.Column++
	}
	return p
}
