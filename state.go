// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// ReaderState is a snapshot of a Tokenizer between tokens. A tokenizer that
// runs out of input can be resumed by passing its State, together with the
// unconsumed remainder of its input plus whatever arrived since, to a new
// tokenizer.
//
// The zero value is ready for use with default options. A ReaderState does
// not share storage with the tokenizer it was taken from.
type ReaderState struct {
	opts ReaderOptions

	offset    int64 // absolute offset of the next unread byte
	line, col int64 // 0-based position of the next unread byte
	stack     bitStack

	kind    Kind // the most recent token, including comments
	last    Kind // the most recent non-comment token
	sep     byte // ',' or ':' consumed since last, or 0
	escaped bool // whether the most recent token contained escapes
	bomDone bool // the byte-order mark check is complete
}

// NewReaderState returns an initial state for a tokenizer with the given
// options. It panics if opts is not valid.
func NewReaderState(opts ReaderOptions) ReaderState {
	if err := opts.Validate(); err != nil {
		panic(err)
	}
	return ReaderState{opts: opts}
}

// Options returns the reader options recorded in s.
func (s ReaderState) Options() ReaderOptions { return s.opts }

// Depth returns the number of containers open at s.
func (s ReaderState) Depth() int { return s.stack.depth }

// Offset returns the absolute offset of the first byte not yet consumed.
func (s ReaderState) Offset() int64 { return s.offset }

// Position returns the line and column of the first byte not yet consumed.
func (s ReaderState) Position() LineCol { return LineCol{Line: s.line + 1, Column: s.col} }

// Kind returns the kind of the most recent token read before s.
func (s ReaderState) Kind() Kind { return s.kind }
