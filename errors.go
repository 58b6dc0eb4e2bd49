// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
)

// ErrNeedMoreData is reported by Tokenizer.Read when the input ends before a
// complete token is available and the input was not marked final. It is not
// a syntax error: supply more input and resume from the tokenizer's State.
var ErrNeedMoreData = errors.New("need more data")

// Errors reported for invalid use of a Document or Element.
var (
	ErrDisposed   = errors.New("document is closed")
	ErrIndexRange = errors.New("index out of range")
	ErrNotFound   = errors.New("property not found")
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Location LineCol // where the error was detected
	Offset   int64   // absolute byte offset of the error
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Message)
}

// DecodeError reports a grammatically valid value whose contents could not be
// decoded, for example a string with an unpaired surrogate escape or a number
// that does not fit the requested type.
type DecodeError struct {
	Offset  int64 // offset of the value in the document
	Message string

	err error
}

// Error satisfies the error interface.
func (d *DecodeError) Error() string {
	if d.err != nil {
		return fmt.Sprintf("decode value at offset %d: %s: %v", d.Offset, d.Message, d.err)
	}
	return fmt.Sprintf("decode value at offset %d: %s", d.Offset, d.Message)
}

// Unwrap supports error wrapping.
func (d *DecodeError) Unwrap() error { return d.err }

// KindError reports an accessor applied to a value of the wrong kind.
type KindError struct {
	Want string    // what the accessor requires, e.g., "array" or "boolean"
	Got  ValueKind // the kind of the value
}

// Error satisfies the error interface.
func (k *KindError) Error() string {
	return fmt.Sprintf("value is %v, want %s", k.Got, k.Want)
}
