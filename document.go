// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"io"

	"github.com/creachadair/jdoc/internal/pool"
	"github.com/creachadair/jdoc/internal/rowdb"
)

// A Document is a parsed JSON text: the source bytes plus one metadata row per
// token. Navigating a document reads rows and slices the source; values are
// decoded only when an accessor asks for them.
//
// A Document is safe for concurrent use by multiple readers. Close releases
// its storage; after Close, every Element of the document reports
// ErrDisposed, and Kind reports Undefined.
type Document struct {
	data  []byte
	owned bool // data belongs to the byte pool
	db    *rowdb.DB
}

// Parse parses a complete JSON text from data. The document refers to data
// without copying; the caller must not modify data until the document is
// closed.
func Parse(data []byte, opts ReaderOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	db, err := build(NewTokenizer(data, true, NewReaderState(opts)), len(data))
	if err != nil {
		return nil, err
	}
	return &Document{data: data, db: db}, nil
}

// ParseChunks parses a complete JSON text given as a sequence of chunks. The
// chunks are copied, and the caller may reuse them once ParseChunks returns.
func ParseChunks(chunks [][]byte, opts ReaderOptions) (*Document, error) {
	var n int
	for _, c := range chunks {
		n += len(c)
	}
	buf := pool.Bytes.Get(n)
	for _, c := range chunks {
		buf = append(buf, c...)
	}
	return parseOwned(buf, opts)
}

// ParseReader reads r to completion and parses the result as a JSON text.
func ParseReader(r io.Reader, opts ReaderOptions) (*Document, error) {
	buf := pool.Bytes.Get(4096)
	for {
		buf = pool.Bytes.Grow(buf, 4096)
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			break
		} else if err != nil {
			pool.Bytes.Put(buf)
			return nil, err
		}
	}
	return parseOwned(buf, opts)
}

func parseOwned(buf []byte, opts ReaderOptions) (*Document, error) {
	doc, err := Parse(buf, opts)
	if err != nil {
		pool.Bytes.Put(buf)
		return nil, err
	}
	doc.owned = true
	return doc, nil
}

// Root returns the first top-level value of d.
func (d *Document) Root() Element { return Element{doc: d, row: 0} }

// Values returns each of the top-level values of d, in order. A document has
// more than one only when parsed with AllowMultipleValues.
func (d *Document) Values() ([]Element, error) {
	if d.db == nil {
		return nil, ErrDisposed
	}
	var out []Element
	for i := 0; i < d.db.Len(); i += d.db.Row(i).Span() {
		out = append(out, Element{doc: d, row: i})
	}
	return out, nil
}

// Len reports the number of metadata rows in d, or 0 if d is closed.
func (d *Document) Len() int {
	if d.db == nil {
		return 0
	}
	return d.db.Len()
}

// Close releases the storage held by d. It is safe to call Close more than
// once; only the first call has any effect.
func (d *Document) Close() error {
	if d.db == nil {
		return nil
	}
	d.db.Release()
	if d.owned {
		pool.Bytes.Put(d.data)
	}
	d.db, d.data = nil, nil
	return nil
}

// row returns the row at index i, or ErrDisposed.
func (d *Document) row(i int) (rowdb.Row, error) {
	if d == nil || d.db == nil {
		return rowdb.Row{}, ErrDisposed
	} else if i >= d.db.Len() {
		return rowdb.Row{}, errors.New("empty document")
	}
	return d.db.Row(i), nil
}
