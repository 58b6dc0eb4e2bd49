// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int64 // the start offset, 0-based
	End int64 // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int64 // line number, 1-based
	Column int64 // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// String renders the location as "line:col-col" when the range is on a single
// line, or "line:col-line:col" otherwise.
func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}
