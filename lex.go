// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"errors"
	"io"

	"github.com/creachadair/jdoc/internal/scan"
)

var errEndOfInput = errors.New("end of input")

var utf8BOM = [...]byte{0xef, 0xbb, 0xbf}

// next scans the next token. It does not restore state on failure; Read
// takes care of that.
func (t *Tokenizer) next() error {
	if !t.st.bomDone {
		if err := t.skipBOM(); err != nil {
			return err
		}
	}
	for {
		c, err := t.skipSpace()
		if err == errEndOfInput {
			return t.endOfInput()
		} else if err != nil {
			return err
		}

		if c == '/' {
			// Skipped comments were consumed by skipSpace.
			if t.st.opts.Comments == AllowComments {
				return t.readComment()
			}
			return t.failf("comments are not allowed")
		}

		switch t.st.sep {
		case ':':
			return t.readValue(c)
		case ',':
			if t.st.stack.inObject() {
				switch c {
				case '"':
					return t.readString(PropertyName)
				case '}':
					if !t.st.opts.AllowTrailingCommas {
						return t.failf("trailing comma before %q", c)
					}
					return t.closeContainer(c)
				}
				return t.failf("unexpected %s, expected property name", describe(c))
			}
			if c == ']' {
				if !t.st.opts.AllowTrailingCommas {
					return t.failf("trailing comma before %q", c)
				}
				return t.closeContainer(c)
			}
			return t.readValue(c)
		}

		switch t.st.last {
		case None:
			return t.readValue(c)

		case BeginObject:
			switch c {
			case '"':
				return t.readString(PropertyName)
			case '}':
				return t.closeContainer(c)
			}
			return t.failf("unexpected %s, expected property name or %q", describe(c), '}')

		case BeginArray:
			if c == ']' {
				return t.closeContainer(c)
			}
			return t.readValue(c)

		case PropertyName:
			if c != ':' {
				return t.failf("unexpected %s after property name, expected %q", describe(c), ':')
			}
			t.src.skip(1)
			t.st.sep = ':'
			continue
		}

		// Reaching here, the last token completed a value.
		if t.st.stack.depth == 0 {
			if t.st.opts.AllowMultipleValues {
				return t.readValue(c)
			}
			return t.failf("unexpected %s after top-level value", describe(c))
		}
		switch c {
		case ',':
			t.src.skip(1)
			t.st.sep = ','
			continue
		case '}', ']':
			return t.closeContainer(c)
		}
		return t.failf("unexpected %s, expected %q or end of container", describe(c), ',')
	}
}

// endOfInput reports the outcome of running out of input between tokens.
func (t *Tokenizer) endOfInput() error {
	switch {
	case !t.final:
		return ErrNeedMoreData
	case t.st.stack.depth > 0:
		if t.st.stack.inObject() {
			return t.failf("unexpected end of input in object")
		}
		return t.failf("unexpected end of input in array")
	case t.st.last == None && !t.st.opts.AllowMultipleValues:
		return t.failf("unexpected end of input, expected a value")
	}
	return io.EOF
}

// skipBOM consumes a UTF-8 byte-order mark at the start of the input.
func (t *Tokenizer) skipBOM() error {
	for i, b := range utf8BOM {
		c, ok := t.src.peekAt(i)
		if !ok {
			if t.final {
				break
			}
			return ErrNeedMoreData
		} else if c != b {
			break
		} else if i == len(utf8BOM)-1 {
			t.src.skip(len(utf8BOM))
			t.src.col = 0 // the mark is not part of the first line
		}
	}
	t.st.bomDone = true
	return nil
}

// skipSpace consumes whitespace, and comments if they are being skipped. It
// returns the next byte without consuming it, or errEndOfInput.
func (t *Tokenizer) skipSpace() (byte, error) {
	for {
		c, ok := t.src.peek()
		if !ok {
			return 0, errEndOfInput
		}
		switch c {
		case ' ', '\t', '\r':
			t.src.skip(1)
		case '\n':
			t.src.skip(1)
			t.src.newline()
		case '/':
			if t.st.opts.Comments != SkipComments {
				return c, nil
			}
			if _, _, err := t.scanComment(); err != nil {
				return 0, err
			}
		default:
			return c, nil
		}
	}
}

// readValue reads the token that begins a value starting with c.
func (t *Tokenizer) readValue(c byte) error {
	switch c {
	case '{', '[':
		if limit := t.st.opts.maxDepth(); t.st.stack.depth >= limit {
			return t.failf("nesting depth exceeds maximum of %d", limit)
		}
		start := t.src
		t.src.skip(1)
		if c == '{' {
			return t.emit(BeginObject, start, start, t.src, false)
		}
		return t.emit(BeginArray, start, start, t.src, false)
	case '"':
		return t.readString(String)
	case 't':
		return t.readLiteral(True, "true")
	case 'f':
		return t.readLiteral(False, "false")
	case 'n':
		return t.readLiteral(Null, "null")
	}
	if c == '-' || isDigit(c) {
		return t.readNumber()
	}
	return t.failf("unexpected %s, expected a value", describe(c))
}

// closeContainer reads the closing bracket c of the innermost container.
func (t *Tokenizer) closeContainer(c byte) error {
	if t.st.stack.depth == 0 {
		return t.failf("unexpected %q", c)
	}
	inObject := t.st.stack.inObject()
	if inObject && c != '}' {
		return t.failf("unexpected %q in object", c)
	} else if !inObject && c != ']' {
		return t.failf("unexpected %q in array", c)
	}
	start := t.src
	t.src.skip(1)
	if inObject {
		return t.emit(EndObject, start, start, t.src, false)
	}
	return t.emit(EndArray, start, start, t.src, false)
}

// readLiteral reads one of the constants true, false, or null.
func (t *Tokenizer) readLiteral(kind Kind, want string) error {
	start := t.src
	for i := 0; i < len(want); i++ {
		c, ok := t.src.peek()
		if !ok {
			return t.needMore("unexpected end of input in %q", want)
		} else if c != want[i] {
			return t.failf("unexpected %s in %q", describe(c), want)
		}
		t.src.skip(1)
	}
	return t.emit(kind, start, start, t.src, false)
}

// readString reads a quoted string as a token of the given kind. The value
// of the token excludes the quotes. Escape sequences are checked for form,
// but not decoded.
func (t *Tokenizer) readString(kind Kind) error {
	start := t.src
	t.src.skip(1) // opening quote
	lo := t.src
	var escaped bool
	for {
		run := t.src.run()
		if run == nil {
			return t.needMore("unterminated string")
		}
		i := scan.IndexStructural(run)
		if i < 0 {
			t.src.skip(len(run))
			continue
		}
		t.src.skip(i)
		switch c := run[i]; c {
		case '"':
			hi := t.src
			t.src.skip(1)
			return t.emit(kind, start, lo, hi, escaped)
		case '\\':
			escaped = true
			if err := t.checkEscape(); err != nil {
				return err
			}
		default:
			return t.failf("invalid control character %#02x in string", c)
		}
	}
}

// checkEscape consumes an escape sequence starting at a backslash.
func (t *Tokenizer) checkEscape() error {
	t.src.skip(1)
	c, ok := t.src.peek()
	if !ok {
		return t.needMore("incomplete escape sequence")
	}
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		t.src.skip(1)
		return nil
	case 'u':
		t.src.skip(1)
		for i := 0; i < 4; i++ {
			h, ok := t.src.peek()
			if !ok {
				return t.needMore("incomplete Unicode escape")
			} else if !scan.IsHex(h) {
				return t.failf("invalid hex digit %s in Unicode escape", describe(h))
			}
			t.src.skip(1)
		}
		return nil
	}
	return t.failf("invalid escape character %s", describe(c))
}

// Number lexer states.
const (
	numStart    = iota
	numSign     // after leading "-"
	numZero     // leading "0" (accepting)
	numInt      // integer digits (accepting)
	numDot      // after "."
	numFrac     // fraction digits (accepting)
	numExp      // after "e" or "E"
	numExpSign  // after exponent sign
	numExpDigit // exponent digits (accepting)
)

func numAccepts(state int) bool {
	return state == numZero || state == numInt || state == numFrac || state == numExpDigit
}

// numStep returns the state after c is consumed in state, or -1 if c does
// not continue the number.
func numStep(state int, c byte) int {
	switch state {
	case numStart:
		if c == '-' {
			return numSign
		}
		fallthrough
	case numSign:
		if c == '0' {
			return numZero
		} else if isDigit(c) {
			return numInt
		}
	case numZero, numInt, numFrac:
		switch {
		case isDigit(c) && state != numZero:
			return state
		case c == '.' && state != numFrac:
			return numDot
		case c == 'e' || c == 'E':
			return numExp
		}
	case numDot:
		if isDigit(c) {
			return numFrac
		}
	case numExp:
		if c == '+' || c == '-' {
			return numExpSign
		}
		fallthrough
	case numExpSign, numExpDigit:
		if isDigit(c) {
			return numExpDigit
		}
	}
	return -1
}

// readNumber reads a number. The number ends at the first byte that cannot
// continue it; whatever follows is checked as the next token.
func (t *Tokenizer) readNumber() error {
	start := t.src
	state := numStart
	for {
		c, ok := t.src.peek()
		if !ok {
			if !t.final {
				return ErrNeedMoreData
			} else if !numAccepts(state) {
				return t.failf("unexpected end of input in number")
			}
			break
		}
		next := numStep(state, c)
		if next < 0 {
			if state == numZero && isDigit(c) {
				return t.failf("invalid leading zero in number")
			} else if !numAccepts(state) {
				return t.failf("unexpected %s in number", describe(c))
			}
			break
		}
		state = next
		t.src.skip(1)
	}
	return t.emit(Number, start, start, t.src, false)
}

// readComment reads a comment as a token.
func (t *Tokenizer) readComment() error {
	start := t.src
	lo, hi, err := t.scanComment()
	if err != nil {
		return err
	}
	return t.emit(Comment, start, lo, hi, false)
}

// scanComment consumes a comment starting at "/", and returns the bounds of
// its text without delimiters. A line comment ends before the line break
// that terminates it, or at the end of the input.
func (t *Tokenizer) scanComment() (lo, hi source, _ error) {
	t.src.skip(1)
	c, ok := t.src.peek()
	if !ok {
		return lo, hi, t.needMore("unexpected end of input after %q", '/')
	}
	switch c {
	case '/':
		t.src.skip(1)
		lo = t.src
		for {
			run := t.src.run()
			if run == nil {
				if !t.final {
					return lo, hi, ErrNeedMoreData
				}
				return lo, t.src, nil
			}
			i := indexLineEnd(run)
			if i < 0 {
				t.src.skip(len(run))
				continue
			}
			t.src.skip(i)
			if run[i] != 0xe2 {
				return lo, t.src, nil
			}

			// U+2028 and U+2029 are line breaks in JavaScript, but not in JSON.
			b1, ok1 := t.src.peekAt(1)
			b2, ok2 := t.src.peekAt(2)
			if (!ok1 || !ok2) && !t.final {
				return lo, hi, ErrNeedMoreData
			} else if b1 == 0x80 && (b2 == 0xa8 || b2 == 0xa9) {
				return lo, hi, t.failf("invalid line separator in comment")
			}
			t.src.skip(1)
		}

	case '*':
		t.src.skip(1)
		lo = t.src
		for {
			run := t.src.run()
			if run == nil {
				return lo, hi, t.needMore("unterminated block comment")
			}
			i := bytes.IndexAny(run, "*\n")
			if i < 0 {
				t.src.skip(len(run))
				continue
			}
			t.src.skip(i)
			if run[i] == '\n' {
				t.src.skip(1)
				t.src.newline()
				continue
			}
			if n, ok := t.src.peekAt(1); !ok {
				return lo, hi, t.needMore("unterminated block comment")
			} else if n == '/' {
				hi = t.src
				t.src.skip(2)
				return lo, hi, nil
			}
			t.src.skip(1)
		}
	}
	return lo, hi, t.failf("unexpected %s after %q", describe(c), '/')
}

// indexLineEnd returns the index of the first byte in b that may end a line
// comment, or -1.
func indexLineEnd(b []byte) int {
	for i, c := range b {
		if c == '\n' || c == '\r' || c == 0xe2 {
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
