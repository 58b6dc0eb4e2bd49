// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unescaping of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jdoc/internal/scan"
	"go4.org/mem"
)

// Errors reported for malformed escape sequences.
var (
	ErrIncomplete     = errors.New("incomplete escape sequence")
	ErrInvalidHex     = errors.New("invalid hex digit in Unicode escape")
	ErrLoneSurrogate  = errors.New("unpaired UTF-16 surrogate")
	ErrUnknownEscape  = errors.New("unknown escape sequence")
	ErrShortBuffer    = errors.New("destination buffer too small")
	errNotSurrogateLo = fmt.Errorf("%w: high surrogate not followed by low surrogate", ErrLoneSurrogate)
)

// Unescape decodes the escaped JSON string content src, which must not
// include the enclosing quotation marks, into dst. It returns the number of
// bytes written. The decoded text is never longer than src, so dst must have
// room for at least src.Len() bytes.
//
// Bytes up to the first backslash are copied verbatim. Escape sequences are
// decoded, with a \uXXXX high surrogate and the \uXXXX low surrogate that
// follows it combined into a single code point.
func Unescape(src mem.RO, dst []byte) (int, error) {
	if len(dst) < src.Len() {
		return 0, ErrShortBuffer
	}
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return len(mem.Append(dst[:0], src)), nil
	}
	n := len(mem.Append(dst[:0], src.SliceTo(i)))
	src = src.SliceFrom(i)
	for src.Len() != 0 {
		if src.At(0) != '\\' {
			j := mem.IndexByte(src, '\\')
			if j < 0 {
				j = src.Len()
			}
			n += len(mem.Append(dst[n:n], src.SliceTo(j)))
			src = src.SliceFrom(j)
			continue
		}
		if src.Len() < 2 {
			return n, ErrIncomplete
		}
		c := src.At(1)
		if c == 'u' {
			r, size, err := decodeUnicode(src)
			if err != nil {
				return n, err
			}
			n += utf8.EncodeRune(dst[n:], r)
			src = src.SliceFrom(size)
			continue
		}
		b, ok := simpleEscape(c)
		if !ok {
			return n, fmt.Errorf("%w: \\%c", ErrUnknownEscape, c)
		}
		dst[n] = b
		n++
		src = src.SliceFrom(2)
	}
	return n, nil
}

// Decode returns a newly-allocated copy of src with escapes decoded.
func Decode(src mem.RO) ([]byte, error) {
	buf := make([]byte, src.Len())
	n, err := Unescape(src, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// decodeUnicode decodes a \uXXXX escape at the front of src, including the
// low half of a surrogate pair if the first escape is a high surrogate. It
// returns the decoded rune and the number of bytes of src consumed.
func decodeUnicode(src mem.RO) (rune, int, error) {
	hi, err := parseHex4(src)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case utf16.IsSurrogate(hi) && hi >= 0xdc00:
		return 0, 0, fmt.Errorf("%w: \\u%04x", ErrLoneSurrogate, hi)
	case !utf16.IsSurrogate(hi):
		return hi, 6, nil
	}
	rest := src.SliceFrom(6)
	if rest.Len() < 2 || rest.At(0) != '\\' || rest.At(1) != 'u' {
		return 0, 0, errNotSurrogateLo
	}
	lo, err := parseHex4(rest)
	if err != nil {
		return 0, 0, err
	}
	r := utf16.DecodeRune(hi, lo)
	if r == utf8.RuneError {
		return 0, 0, errNotSurrogateLo
	}
	return r, 12, nil
}

// simpleEscape returns the byte denoted by the single-character escape \c.
func simpleEscape(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// parseHex4 parses the 4 hex digits of a \uXXXX escape at the front of src.
func parseHex4(src mem.RO) (rune, error) {
	if src.Len() < 6 {
		return 0, ErrIncomplete
	}
	var v rune
	for i := 2; i < 6; i++ {
		d, ok := scan.HexValue(src.At(i))
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHex, src.At(i))
		}
		v = v<<4 | d
	}
	return v, nil
}

// Equal reports whether the escaped JSON string content escaped decodes to
// exactly text, without allocating a decoded copy. Malformed escapes compare
// unequal.
func Equal(escaped, text mem.RO) bool {
	// Decoding never lengthens the text, and the widest escape (\uXXXX for a
	// single byte) shrinks it by at most a factor of six.
	if escaped.Len() < text.Len() || escaped.Len() > 6*text.Len() {
		return false
	}
	for escaped.Len() != 0 {
		i := mem.IndexByte(escaped, '\\')
		if i < 0 {
			return escaped.Equal(text)
		} else if i > text.Len() || !escaped.SliceTo(i).Equal(text.SliceTo(i)) {
			return false
		}
		escaped, text = escaped.SliceFrom(i), text.SliceFrom(i)

		var buf [utf8.UTFMax]byte
		var size int
		if escaped.Len() >= 2 && escaped.At(1) == 'u' {
			r, n, err := decodeUnicode(escaped)
			if err != nil {
				return false
			}
			w := utf8.EncodeRune(buf[:], r)
			escaped, size = escaped.SliceFrom(n), w
		} else {
			if escaped.Len() < 2 {
				return false
			}
			b, ok := simpleEscape(escaped.At(1))
			if !ok {
				return false
			}
			buf[0], size = b, 1
			escaped = escaped.SliceFrom(2)
		}
		if text.Len() < size || !text.SliceTo(size).Equal(mem.B(buf[:size])) {
			return false
		}
		text = text.SliceFrom(size)
	}
	return text.Len() == 0
}
