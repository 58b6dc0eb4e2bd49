// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"testing"

	"github.com/creachadair/jdoc"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"plain text", `"plain text"`},
		{"a\"b\\c", `"a\"b\\c"`},
		{"tab\there\nnewline", `"tab\there\nnewline"`},
		{"x\x01y", `"x\u0001y"`},
		{"a/b", `"a/b"`},
		{"\u2028", `"\u2028"`},
	}
	for _, tc := range tests {
		got := jdoc.Quote(tc.input)
		if got != tc.want {
			t.Errorf("Quote(%q): got %#q, want %#q", tc.input, got, tc.want)
		}
		dec, err := jdoc.Unquote(got)
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", got, err)
		} else if string(dec) != tc.input {
			t.Errorf("Unquote(%#q): got %q, want %q", got, dec, tc.input)
		}
	}
}

func TestUnquote(t *testing.T) {
	for _, bad := range []string{``, `"`, `abc`, `"abc`, `"\x"`, `"\u12"`, `"\ud800"`} {
		if dec, err := jdoc.Unquote(bad); err == nil {
			t.Errorf("Unquote(%#q): got %q, want error", bad, dec)
		}
	}

	src := []byte(`caf\u00e9 \"ok\"`)
	dst := make([]byte, len(src))
	n, err := jdoc.Unescape(src, dst)
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if got, want := string(dst[:n]), `café "ok"`; got != want {
		t.Errorf("Unescape: got %q, want %q", got, want)
	}
}
