// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// A Writer accepts a stream of tokens replayed from a document.
//
// Structural tokens (BeginObject, EndObject, BeginArray, EndArray) are passed
// with nil text. Property names and strings are passed decoded, without
// quotes. Numbers and the constants true, false, and null are passed as their
// source text. The text is only valid for the duration of the call.
type Writer interface {
	WriteToken(kind Kind, text []byte) error
}

// Replay replays the value e to w as a sequence of tokens, in source order.
// If w reports an error, replay stops and that error is returned.
func (e Element) Replay(w Writer) error {
	r, err := e.doc.row(e.row)
	if err != nil {
		return err
	}
	db := e.doc.db
	for i := e.row; i < e.row+r.Span(); i++ {
		row := db.Row(i)
		var text []byte
		switch Kind(row.Kind()) {
		case BeginObject, EndObject, BeginArray, EndArray:
		case String, PropertyName:
			text, err = e.doc.decodeString(row)
			if err != nil {
				return err
			}
		default:
			text = e.doc.text(row)
		}
		if err := w.WriteToken(Kind(row.Kind()), text); err != nil {
			return fmt.Errorf("write %v at offset %d: %w", Kind(row.Kind()), row.Start(), err)
		}
	}
	return nil
}
