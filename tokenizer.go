// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
	"io"
)

// A Tokenizer reads lexical tokens from an input held in memory. Each call to
// Read advances the tokenizer to the next token, or reports an error.
//
// The input may be incomplete. When a token is cut off by the end of input
// and the input was not marked final, Read reports ErrNeedMoreData and leaves
// the tokenizer positioned after the last complete token. The caller may then
// take the State, and construct a new tokenizer over the unread bytes plus
// the data that follows them.
type Tokenizer struct {
	src    source
	final  bool
	st     ReaderState
	origin int64 // absolute offset of the start of src

	tok Token
	err error // sticky
}

// NewTokenizer constructs a tokenizer over a single buffer of input,
// starting from st. If final is true, the input is the end of the data.
func NewTokenizer(data []byte, final bool, st ReaderState) *Tokenizer {
	return NewChunkedTokenizer([][]byte{data}, final, st)
}

// NewChunkedTokenizer constructs a tokenizer over an input given as a
// sequence of chunks, starting from st. Tokens may span chunk boundaries.
// If final is true, the input is the end of the data.
func NewChunkedTokenizer(chunks [][]byte, final bool, st ReaderState) *Tokenizer {
	st.stack = st.stack.clone()
	return &Tokenizer{
		src:    source{chunks: chunks, line: st.line, col: st.col},
		final:  final,
		st:     st,
		origin: st.offset,
	}
}

// Read advances t to the next token of the input. It returns nil on success,
// io.EOF when the input is complete, ErrNeedMoreData if the input ends before
// the next token is complete, or a *SyntaxError for malformed input.
//
// After a syntax error, t is no longer usable and Read returns the same
// error on every subsequent call.
func (t *Tokenizer) Read() error {
	if t.err != nil {
		return t.err
	}
	saveSrc, saveSt := t.src, t.st
	err := t.next()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNeedMoreData):
		t.src, t.st = saveSrc, saveSt
	case err == io.EOF:
		// Leave the position at the end of input, so that Consumed counts
		// trailing whitespace and comments.
	default:
		t.err = err
	}
	return err
}

// Kind returns the kind of the current token.
func (t *Tokenizer) Kind() Kind { return t.st.kind }

// Token returns the current token. Its contents alias the input.
func (t *Tokenizer) Token() Token { return t.tok }

// Depth returns the number of currently open containers.
func (t *Tokenizer) Depth() int { return t.st.stack.depth }

// Consumed returns the number of bytes of this tokenizer's input consumed so
// far. After ErrNeedMoreData, the bytes past this point must be supplied
// again to the next tokenizer.
func (t *Tokenizer) Consumed() int64 { return t.src.consumed() }

// Remaining returns the unconsumed portion of the input.
func (t *Tokenizer) Remaining() [][]byte { return t.src.rest() }

// State returns a snapshot of the tokenizer state after the most recent
// token, suitable for resuming with a new tokenizer.
func (t *Tokenizer) State() ReaderState {
	st := t.st
	st.stack = st.stack.clone()
	st.offset = t.origin + t.src.consumed()
	st.line, st.col = t.src.line, t.src.col
	return st
}

// emit records the current token, spanning from start to the current
// position, with its value from lo to hi. Structural state changes happen
// here, after the token is known to be complete.
func (t *Tokenizer) emit(kind Kind, start, lo, hi source, escaped bool) error {
	val, segs := between(lo, hi)
	t.tok = Token{
		Kind:     kind,
		Value:    val,
		Segments: segs,
		Escaped:  escaped,
		Location: Location{
			Span: Span{
				Pos: t.origin + start.consumed(),
				End: t.origin + t.src.consumed(),
			},
			First: LineCol{Line: start.line + 1, Column: start.col},
			Last:  LineCol{Line: t.src.line + 1, Column: t.src.col},
		},
	}
	t.st.kind = kind
	t.st.escaped = escaped
	if kind == Comment {
		return nil
	}
	switch kind {
	case BeginObject:
		t.st.stack.push(true)
	case BeginArray:
		t.st.stack.push(false)
	case EndObject, EndArray:
		t.st.stack.pop()
	}
	t.st.last = kind
	t.st.sep = 0
	return nil
}

// failf reports a syntax error at the current position.
func (t *Tokenizer) failf(msg string, args ...any) error {
	return &SyntaxError{
		Location: LineCol{Line: t.src.line + 1, Column: t.src.col},
		Offset:   t.origin + t.src.consumed(),
		Message:  fmt.Sprintf(msg, args...),
	}
}

// needMore reports the end of input inside a token: ErrNeedMoreData if more
// input may follow, otherwise a syntax error with the given message.
func (t *Tokenizer) needMore(msg string, args ...any) error {
	if !t.final {
		return ErrNeedMoreData
	}
	return t.failf(msg, args...)
}

func describe(c byte) string {
	if c < ' ' || c > '~' {
		return fmt.Sprintf("byte %#02x", c)
	}
	return fmt.Sprintf("%q", c)
}
