// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"io"

	"github.com/creachadair/jdoc/internal/pool"
	"github.com/creachadair/jdoc/internal/rowdb"
	"github.com/creachadair/jdoc/internal/stack"
)

// A frame holds the counters of an open container while it is built.
type frame struct {
	object  bool // whether the container is an object
	count   int  // elements (arrays) or members (objects) seen
	complex bool // whether any child is a container
}

var framePool pool.Slices[frame]

// build reads every token of t and records one row per token, other than
// comments, in a new database. The hint is the length of the input, used to
// estimate the number of rows. On error, all storage is released.
func build(t *Tokenizer, hint int) (_ *rowdb.DB, err error) {
	db := rowdb.New(hint)
	open := stack.New(&framePool, 16)
	defer func() {
		open.Release()
		if err != nil {
			db.Release()
		}
	}()

	for {
		if err := t.Read(); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		tok := t.Token()
		if tok.Kind == Comment {
			continue
		}
		if tok.Location.End > rowdb.MaxOffset {
			return nil, fmt.Errorf("document too large: offset %d exceeds %d", tok.Location.End, int64(rowdb.MaxOffset))
		}
		start := int(tok.Location.Pos)

		// Count the token as a child of the enclosing container. Array elements
		// count themselves; object members are counted by their names.
		if top := open.PeekRef(); top != nil {
			switch tok.Kind {
			case EndObject, EndArray:
			case PropertyName:
				top.count++
			default:
				if !top.object {
					top.count++
				}
				if tok.Kind == BeginObject || tok.Kind == BeginArray {
					top.complex = true
				}
			}
		}

		switch tok.Kind {
		case BeginObject, BeginArray:
			db.AppendOpen(byte(tok.Kind), start)
			open.Push(frame{object: tok.Kind == BeginObject})

		case EndObject, EndArray:
			begin := BeginObject
			if tok.Kind == EndArray {
				begin = BeginArray
			}
			i := db.FindOpenStart(byte(begin))
			if i < 0 {
				return nil, fmt.Errorf("unmatched %v at offset %d", tok.Kind, start)
			}
			span := db.Len() - i + 1
			if span > rowdb.MaxSpan {
				return nil, fmt.Errorf("container at offset %d spans too many rows (%d > %d)", db.Row(i).Start(), span, rowdb.MaxSpan)
			}
			f, _ := open.Pop()
			db.Resolve(i, f.count, f.complex, span)
			db.Append(rowdb.NewRow(byte(tok.Kind), start, f.count, span, f.complex))

		case String, PropertyName:
			db.Append(rowdb.NewRow(byte(tok.Kind), start+1, valueLen(tok), 1, tok.Escaped))

		default:
			db.Append(rowdb.NewRow(byte(tok.Kind), start, valueLen(tok), 1, false))
		}
	}
	db.Trim()
	return db, nil
}

func valueLen(tok Token) int {
	if tok.Segments == nil {
		return len(tok.Value)
	}
	var n int
	for _, seg := range tok.Segments {
		n += len(seg)
	}
	return n
}
