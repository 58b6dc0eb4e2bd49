// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package scan implements byte searches used by the JSON tokenizer.
package scan

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// wide selects the word-at-a-time search. Both searches report the same index.
var wide = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080
)

// IndexStructural returns the index of the first byte of b that is a double
// quote, a backslash, or an ASCII control character (< 0x20). It returns -1
// if b contains no such byte.
func IndexStructural(b []byte) int {
	if wide {
		return indexWide(b)
	}
	return indexBytes(b)
}

func indexBytes(b []byte) int {
	for i, c := range b {
		if IsStructural(c) {
			return i
		}
	}
	return -1
}

func indexWide(b []byte) int {
	i := 0
	for ; i+8 <= len(b); i += 8 {
		w := binary.LittleEndian.Uint64(b[i:])
		if hasStructural(w) {
			// The word test only reports presence; locate the byte exactly.
			for j, c := range b[i : i+8] {
				if IsStructural(c) {
					return i + j
				}
			}
		}
	}
	if j := indexBytes(b[i:]); j >= 0 {
		return i + j
	}
	return -1
}

// hasStructural reports whether any byte of w is '"', '\\', or < 0x20.
func hasStructural(w uint64) bool {
	return hasZero(w^(lsb*'"')) || hasZero(w^(lsb*'\\')) || hasLess(w, 0x20)
}

func hasZero(w uint64) bool { return (w-lsb)&^w&msb != 0 }

// hasLess reports whether any byte of w is less than n, for n <= 128.
func hasLess(w uint64, n uint64) bool { return (w-lsb*n)&^w&msb != 0 }

// IsStructural reports whether c ends a run of plain string content.
func IsStructural(c byte) bool { return c == '"' || c == '\\' || c < 0x20 }

// IsHex reports whether c is an ASCII hexadecimal digit.
func IsHex(c byte) bool {
	_, ok := HexValue(c)
	return ok
}

// HexValue returns the value of the hexadecimal digit c.
func HexValue(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}
