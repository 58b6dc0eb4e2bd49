// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"encoding/base64"
	"time"
	"unicode/utf8"

	"github.com/creachadair/jdoc/internal/escape"
	"github.com/creachadair/jdoc/internal/rowdb"
	"github.com/google/uuid"
	"go4.org/mem"
)

// scalar returns the row of e if it holds a value of kind want.
func (e Element) scalar(want ValueKind) (rowdb.Row, error) {
	r, err := e.doc.row(e.row)
	if err != nil {
		return r, err
	}
	if got := Kind(r.Kind()).valueKind(); got != want {
		return r, &KindError{Want: want.String(), Got: got}
	}
	return r, nil
}

// decodeString returns the decoded text of the string row r.
func (d *Document) decodeString(r rowdb.Row) ([]byte, error) {
	text := d.text(r)
	if r.IsComplex() {
		dec, err := escape.Decode(mem.B(text))
		if err != nil {
			return nil, &DecodeError{Offset: int64(r.Start()) - 1, Message: "invalid escape", err: err}
		}
		text = dec
	}
	if !utf8.Valid(text) {
		return nil, &DecodeError{Offset: int64(r.Start()) - 1, Message: "invalid UTF-8 in string"}
	}
	return text, nil
}

// String returns the decoded text of the string e.
func (e Element) String() (string, error) {
	r, err := e.scalar(StringValue)
	if err != nil {
		return "", err
	}
	text, err := e.doc.decodeString(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// Bytes returns the decoded text of the string e. If the string has no
// escapes, the result aliases the document.
func (e Element) Bytes() ([]byte, error) {
	r, err := e.scalar(StringValue)
	if err != nil {
		return nil, err
	}
	return e.doc.decodeString(r)
}

// Equal reports whether e is a string whose decoded text equals text. It does
// not allocate.
func (e Element) Equal(text string) bool {
	r, err := e.scalar(StringValue)
	if err != nil {
		return false
	}
	src := mem.B(e.doc.text(r))
	if r.IsComplex() {
		return escape.Equal(src, mem.S(text))
	}
	return src.Equal(mem.S(text))
}

// number returns the source text of the number e.
func (e Element) number() (mem.RO, rowdb.Row, error) {
	r, err := e.scalar(NumberValue)
	if err != nil {
		return mem.RO{}, r, err
	}
	return mem.B(e.doc.text(r)), r, nil
}

// Int64 returns the value of the number e as a signed integer. It reports a
// *DecodeError if the number has a fraction or exponent, or is out of range.
func (e Element) Int64() (int64, error) {
	text, r, err := e.number()
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Offset: int64(r.Start()), Message: "invalid int64", err: err}
	}
	return v, nil
}

// Uint64 returns the value of the number e as an unsigned integer. It reports
// a *DecodeError if the number is negative, has a fraction or exponent, or is
// out of range.
func (e Element) Uint64() (uint64, error) {
	text, r, err := e.number()
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseUint(text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Offset: int64(r.Start()), Message: "invalid uint64", err: err}
	}
	return v, nil
}

// Float64 returns the value of the number e as a floating-point value. It
// reports a *DecodeError if the value is out of range.
func (e Element) Float64() (float64, error) {
	text, r, err := e.number()
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseFloat(text, 64)
	if err != nil {
		return 0, &DecodeError{Offset: int64(r.Start()), Message: "invalid float64", err: err}
	}
	return v, nil
}

// Bool returns the value of e, which must be true or false.
func (e Element) Bool() (bool, error) {
	switch k := e.Kind(); k {
	case TrueValue:
		return true, nil
	case FalseValue:
		return false, nil
	case Undefined:
		if _, err := e.doc.row(e.row); err != nil {
			return false, err
		}
		fallthrough
	default:
		return false, &KindError{Want: "boolean", Got: k}
	}
}

// IsNull reports whether e is the constant null.
func (e Element) IsNull() bool { return e.Kind() == NullValue }

// Base64 decodes the string e as standard base64 with padding.
func (e Element) Base64() ([]byte, error) {
	r, err := e.scalar(StringValue)
	if err != nil {
		return nil, err
	}
	text, err := e.doc.decodeString(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return nil, &DecodeError{Offset: int64(r.Start()) - 1, Message: "invalid base64", err: err}
	}
	return out[:n], nil
}

// Time decodes the string e as an RFC 3339 date and time.
func (e Element) Time() (time.Time, error) {
	s, err := e.String()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		off, _ := e.Offset()
		return time.Time{}, &DecodeError{Offset: off, Message: "invalid date-time", err: err}
	}
	return t, nil
}

// GUID decodes the string e as a UUID, in any of the forms accepted by
// uuid.Parse.
func (e Element) GUID() (uuid.UUID, error) {
	r, err := e.scalar(StringValue)
	if err != nil {
		return uuid.UUID{}, err
	}
	text, err := e.doc.decodeString(r)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.ParseBytes(text)
	if err != nil {
		return uuid.UUID{}, &DecodeError{Offset: int64(r.Start()) - 1, Message: "invalid GUID", err: err}
	}
	return id, nil
}
