// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"iter"

	"github.com/creachadair/jdoc/internal/escape"
	"github.com/creachadair/jdoc/internal/rowdb"
	"go4.org/mem"
)

// An Element is a value within a Document. Elements are small values that
// refer to a row of their document; they remain valid until the document is
// closed.
type Element struct {
	doc *Document
	row int
}

// Kind returns the kind of value e holds, or Undefined if the document of e
// is closed or e is the zero Element.
func (e Element) Kind() ValueKind {
	r, err := e.doc.row(e.row)
	if err != nil {
		return Undefined
	}
	return Kind(r.Kind()).valueKind()
}

// Offset returns the offset of e in the source text of its document.
func (e Element) Offset() (int64, error) {
	r, err := e.doc.row(e.row)
	if err != nil {
		return 0, err
	}
	if k := Kind(r.Kind()); k == String || k == PropertyName {
		return int64(r.Start()) - 1, nil
	}
	return int64(r.Start()), nil
}

// Raw returns the complete source text of e, including quotation marks for
// strings and brackets for containers. The result aliases the document.
func (e Element) Raw() ([]byte, error) {
	r, err := e.doc.row(e.row)
	if err != nil {
		return nil, err
	}
	lo, hi := e.doc.extent(e.row, r)
	return e.doc.data[lo:hi], nil
}

// extent returns the source offsets spanned by the value starting at row i.
func (d *Document) extent(i int, r rowdb.Row) (lo, hi int) {
	switch Kind(r.Kind()) {
	case BeginObject, BeginArray:
		end := d.db.Row(i + r.Span() - 1)
		return r.Start(), end.Start() + 1
	case String, PropertyName:
		return r.Start() - 1, r.Start() + r.Size() + 1
	}
	return r.Start(), r.Start() + r.Size()
}

// text returns the source text of a scalar row, excluding quotes.
func (d *Document) text(r rowdb.Row) []byte {
	return d.data[r.Start() : r.Start()+r.Size()]
}

// container returns the row of e if it is a container of the given kind.
func (e Element) container(kind Kind) (rowdb.Row, error) {
	r, err := e.doc.row(e.row)
	if err != nil {
		return r, err
	} else if Kind(r.Kind()) != kind {
		return r, &KindError{Want: kind.valueKind().String(), Got: Kind(r.Kind()).valueKind()}
	}
	return r, nil
}

// Len returns the number of elements in the array e.
func (e Element) Len() (int, error) {
	r, err := e.container(BeginArray)
	if err != nil {
		return 0, err
	}
	return r.Size(), nil
}

// Index returns the element at offset i of the array e.
// It reports ErrIndexRange if i < 0 or i >= e.Len().
func (e Element) Index(i int) (Element, error) {
	r, err := e.container(BeginArray)
	if err != nil {
		return Element{}, err
	}
	n := r.Size()
	if i < 0 || i >= n {
		return Element{}, ErrIndexRange
	}
	db := e.doc.db
	if !r.IsComplex() {
		// Every element is a single row.
		return Element{doc: e.doc, row: e.row + 1 + i}, nil
	}

	if i < n/2 {
		pos := e.row + 1
		for range i {
			pos += db.Row(pos).Span()
		}
		return Element{doc: e.doc, row: pos}, nil
	}

	// Walk backward from the end row, skipping nested containers whole.
	pos := e.row + r.Span() - 1
	for k := n - 1; ; k-- {
		pos = db.ValueBefore(pos)
		if k == i {
			return Element{doc: e.doc, row: pos}, nil
		}
	}
}

// Items returns a sequence of the elements of e in order. If e is not an
// array, the sequence is empty.
func (e Element) Items() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		r, err := e.container(BeginArray)
		if err != nil {
			return
		}
		db := e.doc.db
		pos := e.row + 1
		for range r.Size() {
			if !yield(Element{doc: e.doc, row: pos}) {
				return
			}
			pos += db.Row(pos).Span()
		}
	}
}

// PropertyCount returns the number of members in the object e.
func (e Element) PropertyCount() (int, error) {
	r, err := e.container(BeginObject)
	if err != nil {
		return 0, err
	}
	return r.Size(), nil
}

// Property returns the value of the member of e whose name is name. If the
// object has more than one member with that name, the last one wins. It
// reports ErrNotFound if e has no such member.
func (e Element) Property(name string) (Element, error) {
	r, err := e.container(BeginObject)
	if err != nil {
		return Element{}, err
	}
	db := e.doc.db
	want := mem.S(name)
	pos := e.row + r.Span() - 1
	for range r.Size() {
		val := db.ValueBefore(pos)
		key := db.Row(val - 1)
		text := mem.B(e.doc.text(key))
		if key.IsComplex() {
			if escape.Equal(text, want) {
				return Element{doc: e.doc, row: val}, nil
			}
		} else if text.Equal(want) {
			return Element{doc: e.doc, row: val}, nil
		}
		pos = val - 1
	}
	return Element{}, ErrNotFound
}

// Members returns a sequence of the members of the object e in order, as
// pairs of name and value. The name elements are strings. If e is not an
// object, the sequence is empty.
func (e Element) Members() iter.Seq2[Element, Element] {
	return func(yield func(Element, Element) bool) {
		r, err := e.container(BeginObject)
		if err != nil {
			return
		}
		db := e.doc.db
		pos := e.row + 1
		for range r.Size() {
			if !yield(Element{doc: e.doc, row: pos}, Element{doc: e.doc, row: pos + 1}) {
				return
			}
			pos += 1 + db.Row(pos+1).Span()
		}
	}
}

// Is reports whether e and o refer to the same value of the same document.
func (e Element) Is(o Element) bool { return e.doc == o.doc && e.row == o.row }
