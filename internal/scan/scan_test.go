// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package scan

import (
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestIndexStructural(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", -1},
		{"abc", -1},
		{"no structural bytes in this longer text", -1},
		{`"`, 0},
		{`\`, 0},
		{"\x00", 0},
		{"\x1f", 0},
		{" ", -1},
		{"abc\"def", 3},
		{"abcdefg\\", 7},
		{"abcdefgh\"", 8},
		{"abcdefghijklmno\n", 15},
		{"\u00e9\u00e8 \u2028 x\"", 10},
		{strings.Repeat("x", 63) + "\t", 63},
		{strings.Repeat("\x7f", 16) + `"`, 16},
		{strings.Repeat("\xff", 9) + "\x01", 9},
	}
	for _, mode := range []bool{false, true} {
		mtest.Swap(t, &wide, mode)
		for _, tc := range tests {
			if got := IndexStructural([]byte(tc.input)); got != tc.want {
				t.Errorf("IndexStructural(%q) [wide=%v]: got %d, want %d", tc.input, mode, got, tc.want)
			}
		}
	}
}

func TestIndexAgreement(t *testing.T) {
	// Every single byte value at every offset within two words.
	buf := []byte(strings.Repeat("a", 17))
	for c := 0; c < 256; c++ {
		for pos := range buf {
			for i := range buf {
				buf[i] = 'a'
			}
			buf[pos] = byte(c)
			if a, b := indexBytes(buf), indexWide(buf); a != b {
				t.Fatalf("byte %#02x at %d: bytes=%d wide=%d", c, pos, a, b)
			}
		}
	}
}

func TestHexValue(t *testing.T) {
	for _, c := range []byte("0123456789abcdefABCDEF") {
		if !IsHex(c) {
			t.Errorf("IsHex(%q): got false, want true", c)
		}
	}
	for _, c := range []byte("gGxX -+.\x00\xff") {
		if IsHex(c) {
			t.Errorf("IsHex(%q): got true, want false", c)
		}
	}
	if v, ok := HexValue('F'); !ok || v != 15 {
		t.Errorf("HexValue('F'): got %d, %v; want 15, true", v, ok)
	}
	if v, ok := HexValue('7'); !ok || v != 7 {
		t.Errorf("HexValue('7'): got %d, %v; want 7, true", v, ok)
	}
}
