// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package rowdb implements the metadata database of a parsed JSON document.
//
// Each token of the document is described by one fixed-size Row, stored in a
// flat array in source order. Containers are described by a start row and an
// end row, both recording the number of rows the container spans, so that a
// whole subtree can be skipped in either direction in constant time.
package rowdb

import (
	"fmt"

	"github.com/creachadair/jdoc/internal/pool"
)

const (
	complexBit  = 1 << 31
	sizeMask    = complexBit - 1
	unknownSize = sizeMask // size of a container whose end has not been seen

	spanBits = 28
	spanMask = 1<<spanBits - 1

	// MaxSpan is the largest number of rows a single container may span.
	MaxSpan = spanMask

	// MaxOffset is the largest source offset a row can record.
	MaxOffset = 1<<32 - 1
)

// A Row describes one token of a document.
//
// For scalars, Size is the byte length of the token text; for strings and
// property names, Start points just past the opening quote and Size excludes
// both quotes. For containers, Size is the number of elements (arrays) or
// members (objects), and Span is the number of rows from the start row to the
// end row inclusive.
type Row struct {
	start    uint32
	size     uint32 // low 31 bits: size; top bit: complex
	spanKind uint32 // low 28 bits: span; high 4 bits: kind
}

// NewRow constructs a row for a token of the given kind. The kind must fit in
// 4 bits.
func NewRow(kind byte, start, size, span int, complex bool) Row {
	r := Row{
		start:    uint32(start),
		size:     uint32(size) & sizeMask,
		spanKind: uint32(kind)<<spanBits | uint32(span)&spanMask,
	}
	if complex {
		r.size |= complexBit
	}
	return r
}

// Kind returns the token kind recorded in r.
func (r Row) Kind() byte { return byte(r.spanKind >> spanBits) }

// Start returns the source offset recorded in r.
func (r Row) Start() int { return int(r.start) }

// Size returns the length or child count recorded in r.
func (r Row) Size() int { return int(r.size & sizeMask) }

// Span returns the number of rows covered by r.
func (r Row) Span() int { return int(r.spanKind & spanMask) }

// IsComplex reports whether r is flagged complex: a string containing
// escapes, or a container with at least one container child.
func (r Row) IsComplex() bool { return r.size&complexBit != 0 }

// IsUnknown reports whether r is a container start whose end has not been
// recorded yet.
func (r Row) IsUnknown() bool { return r.size&sizeMask == unknownSize }

func (r Row) String() string {
	return fmt.Sprintf("Row(kind=%d, start=%d, size=%d, span=%d, complex=%v)",
		r.Kind(), r.Start(), r.Size(), r.Span(), r.IsComplex())
}

var rowPool pool.Slices[Row]

// RowSize is the encoded size of a Row in bytes.
const RowSize = 12

// A DB is an append-only array of rows. Rows are appended in one forward
// pass; the only mutation after append is resolving an open container start.
type DB struct {
	rows []Row
}

// New returns an empty database sized for a payload of n bytes.
func New(n int) *DB { return &DB{rows: rowPool.Get(EstimateRows(n))} }

// EstimateRows returns the initial row capacity for a payload of n bytes.
// It assumes about one token per RowSize bytes of input, so the initial
// metadata is no larger than the payload; denser inputs grow by doubling.
func EstimateRows(n int) int { return n/RowSize + 16 }

// Len reports the number of rows in db.
func (db *DB) Len() int { return len(db.rows) }

// Row returns the row at index i.
func (db *DB) Row(i int) Row { return db.rows[i] }

// Append adds r to the end of db and returns its index.
func (db *DB) Append(r Row) int {
	db.rows = rowPool.Grow(db.rows, 1)
	db.rows = append(db.rows, r)
	return len(db.rows) - 1
}

// AppendOpen appends the start row of a container of the given kind whose
// size and span are not yet known.
func (db *DB) AppendOpen(kind byte, start int) int {
	return db.Append(Row{
		start:    uint32(start),
		size:     unknownSize,
		spanKind: uint32(kind) << spanBits,
	})
}

// FindOpenStart returns the index of the last row of the given kind whose
// size is still unknown, or -1 if there is none. Because containers nest, this
// is the innermost open container of that kind.
func (db *DB) FindOpenStart(kind byte) int {
	for i := len(db.rows) - 1; i >= 0; i-- {
		if r := db.rows[i]; r.Kind() == kind && r.IsUnknown() {
			return i
		}
	}
	return -1
}

// ValueBefore returns the index of the first row of the value whose last row
// is i-1. Row i-1 must be a scalar or the end row of a container; in the
// latter case the result is the container's start row.
func (db *DB) ValueBefore(i int) int {
	if span := db.rows[i-1].Span(); span > 1 {
		return i - span
	}
	return i - 1
}

// Resolve records the child count, complexity, and span of the open container
// start row at index i. It panics if row i is not open.
func (db *DB) Resolve(i, count int, complex bool, span int) {
	r := db.rows[i]
	if !r.IsUnknown() {
		panic(fmt.Sprintf("rowdb: resolve of closed row %d", i))
	}
	db.rows[i] = NewRow(r.Kind(), r.Start(), count, span, complex)
}

// Trim shrinks the storage of db to the smallest pooled bucket that holds its
// rows.
func (db *DB) Trim() { db.rows = rowPool.Shrink(db.rows) }

// Release clears the rows of db and returns its storage to the pool.
// The database is empty afterward.
func (db *DB) Release() {
	rowPool.Put(db.rows)
	db.rows = nil
}

// Copy returns a new database holding rows [lo, hi) of db, with each start
// offset reduced by base.
func (db *DB) Copy(lo, hi, base int) *DB {
	out := &DB{rows: rowPool.Get(hi - lo)}
	for _, r := range db.rows[lo:hi] {
		r.start -= uint32(base)
		out.rows = append(out.rows, r)
	}
	return out
}
