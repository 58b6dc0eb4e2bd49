// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"strings"

	"github.com/creachadair/jdoc/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// AppendQuote appends the quoted JSON encoding of src to dst.
func AppendQuote(dst, src []byte) []byte { return escape.AppendQuote(dst, mem.B(src)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Decode(mem.S(src[1 : len(src)-1]))
}

// Unescape decodes the escape sequences in src, which is the text of a JSON
// string without its quotation marks, into dst. It returns the number of
// bytes written. The dst buffer must have room for at least len(src) bytes;
// decoded text is never longer than its escaped form.
func Unescape(src, dst []byte) (int, error) { return escape.Unescape(mem.B(src), dst) }
