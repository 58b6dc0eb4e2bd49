// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"strings"
)

// An IndentWriter is a Writer that renders the tokens it receives as
// pretty-printed JSON text. Each element of a non-empty container is written
// on its own line, indented by one copy of Indent per level of nesting.
// Empty containers are written as "{}" and "[]".
//
// A zero IndentWriter indents with two spaces.
type IndentWriter struct {
	Indent string

	buf       []byte
	open      []bool // per open container: whether it has no elements yet
	afterName bool
}

func (w *IndentWriter) indent() string {
	if w.Indent == "" {
		return "  "
	}
	return w.Indent
}

func (w *IndentWriter) newline(depth int) {
	w.buf = append(w.buf, '\n')
	w.buf = append(w.buf, strings.Repeat(w.indent(), depth)...)
}

// WriteToken implements the Writer interface.
func (w *IndentWriter) WriteToken(kind Kind, text []byte) error {
	switch kind {
	case EndObject, EndArray:
		n := len(w.open)
		if n == 0 || w.afterName {
			return fmt.Errorf("unexpected %v", kind)
		}
		empty := w.open[n-1]
		w.open = w.open[:n-1]
		if !empty {
			w.newline(n - 1)
		}
		if kind == EndObject {
			w.buf = append(w.buf, '}')
		} else {
			w.buf = append(w.buf, ']')
		}
		return nil
	}

	if w.afterName {
		w.afterName = false
	} else if n := len(w.open); n > 0 {
		if !w.open[n-1] {
			w.buf = append(w.buf, ',')
		}
		w.open[n-1] = false
		w.newline(n)
	}

	switch kind {
	case BeginObject:
		w.buf = append(w.buf, '{')
		w.open = append(w.open, true)
	case BeginArray:
		w.buf = append(w.buf, '[')
		w.open = append(w.open, true)
	case PropertyName:
		w.buf = append(AppendQuote(w.buf, text), ':', ' ')
		w.afterName = true
	case String:
		w.buf = AppendQuote(w.buf, text)
	case Number, True, False, Null:
		w.buf = append(w.buf, text...)
	default:
		return fmt.Errorf("unexpected %v", kind)
	}
	return nil
}

// Bytes returns the text rendered so far. The result aliases the writer's
// buffer, and is only valid until the next call to WriteToken or Reset.
func (w *IndentWriter) Bytes() []byte { return w.buf }

// Reset discards the rendered text, so that w can be reused.
func (w *IndentWriter) Reset() {
	w.buf = w.buf[:0]
	w.open = w.open[:0]
	w.afterName = false
}
