// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice. Invalid
// UTF-8 in src is replaced by the escaped Unicode replacement rune.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					dst = append(dst, '\\', b)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				dst = append(dst, '\\', byte(r))
			} else {
				dst = append(dst, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case utf8.RuneError: // also covers invalid encodings (n == 1)
			dst = append(dst, `\ufffd`...)
		case '\u2028': // line separator
			dst = append(dst, `\u2028`...)
		case '\u2029': // paragraph separator
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// Quote returns the JSON string encoding of src with quotation marks.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }
