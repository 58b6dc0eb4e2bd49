// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"fmt"
)

// A Token is a single lexical token reported by a Tokenizer.
//
// The value of a string or property name excludes its quotation marks, and
// the value of a comment excludes its delimiters. For all other kinds the
// value is the complete text of the token. Value and Segments alias the
// tokenizer's input; the caller must copy them to retain them past the
// lifetime of that input.
type Token struct {
	Kind Kind

	// The value text, when it lies within a single input chunk.
	Value []byte

	// The pieces of the value text, in order, when it crosses one or more
	// chunk boundaries. Exactly one of Value and Segments is non-nil.
	Segments [][]byte

	// Whether a string or property name contains escape sequences.
	Escaped bool

	// The location of the complete token text, including quotes and comment
	// delimiters.
	Location Location
}

// IsMultiSegment reports whether the value of t is split across chunks.
func (t Token) IsMultiSegment() bool { return t.Segments != nil }

// Bytes returns the value of t as a single slice. If the value is split
// across chunks the pieces are copied into a new slice.
func (t Token) Bytes() []byte {
	if t.Segments != nil {
		return bytes.Join(t.Segments, nil)
	}
	return t.Value
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q at %v", t.Kind, t.Bytes(), t.Location)
}
