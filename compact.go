// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// A CompactWriter is a Writer that renders the tokens it receives as compact
// JSON text, with no insignificant whitespace. Strings are re-quoted, so the
// output may escape differently than the source did.
type CompactWriter struct {
	buf       []byte
	open      []bool // per open container: whether it has no elements yet
	afterName bool
}

// WriteToken implements the Writer interface.
func (c *CompactWriter) WriteToken(kind Kind, text []byte) error {
	switch kind {
	case EndObject, EndArray:
		if len(c.open) == 0 || c.afterName {
			return fmt.Errorf("unexpected %v", kind)
		}
		c.open = c.open[:len(c.open)-1]
		if kind == EndObject {
			c.buf = append(c.buf, '}')
		} else {
			c.buf = append(c.buf, ']')
		}
		return nil
	}

	if c.afterName {
		c.afterName = false
	} else if n := len(c.open); n > 0 {
		if !c.open[n-1] {
			c.buf = append(c.buf, ',')
		}
		c.open[n-1] = false
	}

	switch kind {
	case BeginObject:
		c.buf = append(c.buf, '{')
		c.open = append(c.open, true)
	case BeginArray:
		c.buf = append(c.buf, '[')
		c.open = append(c.open, true)
	case PropertyName:
		c.buf = append(AppendQuote(c.buf, text), ':')
		c.afterName = true
	case String:
		c.buf = AppendQuote(c.buf, text)
	case Number, True, False, Null:
		c.buf = append(c.buf, text...)
	default:
		return fmt.Errorf("unexpected %v", kind)
	}
	return nil
}

// Bytes returns the text rendered so far. The result aliases the writer's
// buffer, and is only valid until the next call to WriteToken or Reset.
func (c *CompactWriter) Bytes() []byte { return c.buf }

// Reset discards the rendered text, so that c can be reused.
func (c *CompactWriter) Reset() {
	c.buf = c.buf[:0]
	c.open = c.open[:0]
	c.afterName = false
}
