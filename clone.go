// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "github.com/creachadair/jdoc/internal/pool"

// Clone returns a new Document holding a copy of the value e and everything
// it contains. The clone owns its storage and is independent of the document
// of e, which may be closed without affecting it.
func (e Element) Clone() (*Document, error) {
	r, err := e.doc.row(e.row)
	if err != nil {
		return nil, err
	}
	lo, hi := e.doc.extent(e.row, r)
	data := append(pool.Bytes.Get(hi-lo), e.doc.data[lo:hi]...)
	return &Document{
		data:  data,
		owned: true,
		db:    e.doc.db.Copy(e.row, e.row+r.Span(), lo),
	}, nil
}
