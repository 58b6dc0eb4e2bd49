// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// A source is a read position in a sequence of input chunks. The zero-length
// chunks are permitted and skipped. A source is a value type: copying it
// records a position that can later be restored or used as a span endpoint.
type source struct {
	chunks [][]byte
	ci     int   // index of the current chunk
	pos    int   // offset of the next byte within chunks[ci]
	base   int64 // total length of chunks[:ci]

	line, col int64 // 0-based line and byte column of the next byte
}

// fill advances past exhausted chunks, and reports whether any input remains.
func (s *source) fill() bool {
	for s.ci < len(s.chunks) && s.pos >= len(s.chunks[s.ci]) {
		s.base += int64(len(s.chunks[s.ci]))
		s.ci++
		s.pos = 0
	}
	return s.ci < len(s.chunks)
}

// peek returns the next byte without consuming it.
func (s *source) peek() (byte, bool) {
	if !s.fill() {
		return 0, false
	}
	return s.chunks[s.ci][s.pos], true
}

// peekAt returns the byte k positions past the next byte, if there is one.
func (s *source) peekAt(k int) (byte, bool) {
	ci, pos := s.ci, s.pos+k
	for ci < len(s.chunks) {
		if pos < len(s.chunks[ci]) {
			return s.chunks[ci][pos], true
		}
		pos -= len(s.chunks[ci])
		ci++
	}
	return 0, false
}

// run returns the unconsumed remainder of the current chunk, or nil if the
// input is exhausted.
func (s *source) run() []byte {
	if !s.fill() {
		return nil
	}
	return s.chunks[s.ci][s.pos:]
}

// skip consumes n bytes, none of which is a newline. The caller must ensure
// at least n bytes remain.
func (s *source) skip(n int) {
	s.col += int64(n)
	for n > 0 && s.ci < len(s.chunks) {
		avail := len(s.chunks[s.ci]) - s.pos
		if n <= avail {
			s.pos += n
			return
		}
		n -= avail
		s.base += int64(len(s.chunks[s.ci]))
		s.ci++
		s.pos = 0
	}
}

// newline records that a newline was just consumed.
func (s *source) newline() { s.line++; s.col = 0 }

// consumed returns the number of bytes consumed from the chunks.
func (s *source) consumed() int64 { return s.base + int64(s.pos) }

// rest returns the unconsumed input as a list of non-empty chunks.
func (s *source) rest() [][]byte {
	var out [][]byte
	for i := s.ci; i < len(s.chunks); i++ {
		c := s.chunks[i]
		if i == s.ci {
			c = c[s.pos:]
		}
		if len(c) != 0 {
			out = append(out, c)
		}
	}
	return out
}

// between returns the bytes from lo up to hi. When they lie in a single
// chunk the result is a subslice of that chunk; otherwise the non-empty
// pieces are returned separately in order.
func between(lo, hi source) ([]byte, [][]byte) {
	if lo.ci == hi.ci {
		return lo.chunks[lo.ci][lo.pos:hi.pos], nil
	}
	var segs [][]byte
	add := func(b []byte) {
		if len(b) != 0 {
			segs = append(segs, b)
		}
	}
	add(lo.chunks[lo.ci][lo.pos:])
	for i := lo.ci + 1; i < hi.ci; i++ {
		add(lo.chunks[i])
	}
	if hi.ci < len(hi.chunks) {
		add(hi.chunks[hi.ci][:hi.pos])
	}
	switch len(segs) {
	case 0:
		return []byte{}, nil
	case 1:
		return segs[0], nil
	}
	return nil, segs
}
