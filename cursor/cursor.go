// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the elements of a JSON document.
package cursor

import (
	"fmt"

	"github.com/creachadair/jdoc"
)

// Path traverses a sequential path into the structure of e where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Path(e jdoc.Element, path ...any) (jdoc.Element, error) {
	c := New(e).Down(path...)
	if err := c.Err(); err != nil {
		return jdoc.Element{}, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a jdoc.Element.
type Cursor struct {
	org jdoc.Element
	stk []jdoc.Element
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jdoc.Element) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() jdoc.Element { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current element under the cursor.
func (c *Cursor) Value() jdoc.Element {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of elements from the origin to the
// current location in c.
func (c *Cursor) Path() []jdoc.Element {
	return append([]jdoc.Element{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current element, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or functions (see below).
// If the path cannot be completely consumed, traversal stops at the last
// element reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current element must be an object, and
// the string selects the value of the member with that name.
//
// If a path element is an integer, the current element must be an array, and
// the integer selects an element of the array. Negative indices count
// backward from the end (-1 is last, -2 second last). An error is reported if
// the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next element in the sequence. The function must have a
// signature
//
//	func(jdoc.Element) (jdoc.Element, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if k := cur.Kind(); k != jdoc.ObjectValue {
				return c.setErrorf("cannot traverse %v with %q", k, t)
			}
			next, err := cur.Property(t)
			if err != nil {
				return c.setErrorf("key %q: %w", t, err)
			}
			cur = c.push(next)

		case int:
			n, err := cur.Len()
			if err != nil {
				return c.setErrorf("cannot traverse %v with %d", cur.Kind(), t)
			}
			i, ok := fixArrayBound(n, t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", t, n)
			}
			next, err := cur.Index(i)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case func(jdoc.Element) (jdoc.Element, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

// Find returns a function usable as a path element for Down, which selects
// the first element of an array for which match reports true.
func Find(match func(jdoc.Element) bool) func(jdoc.Element) (jdoc.Element, error) {
	return func(e jdoc.Element) (jdoc.Element, error) {
		if k := e.Kind(); k != jdoc.ArrayValue {
			return jdoc.Element{}, fmt.Errorf("cannot search %v", k)
		}
		for v := range e.Items() {
			if match(v) {
				return v, nil
			}
		}
		return jdoc.Element{}, jdoc.ErrNotFound
	}
}

func (c *Cursor) push(e jdoc.Element) jdoc.Element { c.stk = append(c.stk, e); return e }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
