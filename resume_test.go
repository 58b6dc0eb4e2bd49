// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

var resumeInputs = []struct {
	input string
	opts  jdoc.ReaderOptions
}{
	{`{"a": [1, 2.5e-3, "x\"y", true, false, null], "b": {"c": "\u00e9"}}`, jdoc.ReaderOptions{}},
	{"\xef\xbb\xbf[1, /* c */ 2, // d\n 3,]", jdoc.ReaderOptions{
		Comments:            jdoc.AllowComments,
		AllowTrailingCommas: true,
	}},
	{"[1, /* c */ 2, // d\r\n 3]", jdoc.ReaderOptions{Comments: jdoc.SkipComments}},
	{`"a long string with no escapes at all, which must span several chunks"`, jdoc.ReaderOptions{}},
	{"[\n-0.5E+10,\n\"\\ud83d\\ude00\",\n0, -0, 12345678901234567890\n]", jdoc.ReaderOptions{}},
	{`1 "two" [3] {"four":4} null`, jdoc.ReaderOptions{AllowMultipleValues: true}},
	{`{"deep":[[[[{"x":[[]]}]]]]}`, jdoc.ReaderOptions{}},
}

// Splitting the input into chunks anywhere must not change the tokens.
func TestChunkInvariance(t *testing.T) {
	for _, tc := range resumeInputs {
		want, err := tokenize(tc.input, tc.opts)
		if err != nil {
			t.Fatalf("Read %#q: %v", tc.input, err)
		}
		in := []byte(tc.input)

		for i := 0; i <= len(in); i++ {
			chunks := [][]byte{in[:i], in[i:]}
			got, err := drain(jdoc.NewChunkedTokenizer(chunks, true, jdoc.NewReaderState(tc.opts)))
			if err != nil {
				t.Errorf("Split at %d: %v", i, err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Input %#q split at %d (-want, +got):\n%s", tc.input, i, diff)
			}
		}

		var bytewise [][]byte
		for i := range in {
			bytewise = append(bytewise, in[i:i+1])
		}
		got, err := drain(jdoc.NewChunkedTokenizer(bytewise, true, jdoc.NewReaderState(tc.opts)))
		if err != nil {
			t.Errorf("Bytewise: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Input %#q bytewise (-want, +got):\n%s", tc.input, diff)
		}
	}
}

// readResumable feeds input to a sequence of tokenizers one byte at a time,
// resuming each from the state of the last.
func readResumable(t *testing.T, input string, opts jdoc.ReaderOptions) []tokInfo {
	t.Helper()
	var out []tokInfo
	st := jdoc.NewReaderState(opts)
	var pending []byte
	for i := 0; i <= len(input); i++ {
		final := i == len(input)
		if !final {
			pending = append(pending, input[i])
		}
		tz := jdoc.NewTokenizer(pending, final, st)
		for {
			err := tz.Read()
			if err == jdoc.ErrNeedMoreData {
				break
			} else if err == io.EOF {
				return out
			} else if err != nil {
				t.Fatalf("Read at byte %d: %v", i, err)
			}
			tok := tz.Token()
			out = append(out, tokInfo{Kind: tok.Kind, Text: string(tok.Bytes()), Loc: tok.Location.String()})
		}
		if final {
			t.Fatal("Need more data at end of final input")
		}
		st = tz.State()
		pending = append([]byte(nil), pending[tz.Consumed():]...)
	}
	return out
}

func TestResumeBytewise(t *testing.T) {
	for _, tc := range resumeInputs {
		want, err := tokenize(tc.input, tc.opts)
		if err != nil {
			t.Fatalf("Read %#q: %v", tc.input, err)
		}
		got := readResumable(t, tc.input, tc.opts)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Input %#q (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestNeedMoreData(t *testing.T) {
	tests := []struct {
		input    string
		consumed int64 // bytes confirmed before the incomplete token
	}{
		{"", 0},
		{"\xef\xbb", 0},
		{"[1", 1},
		{"[12.5e", 1},
		{`["abc`, 1},
		{`["a\`, 1},
		{`["a\u00`, 1},
		{`[tr`, 1},
		{`{"a"`, 4},
		{`{"a":`, 4},
		{`{"a":1,`, 6},
		{"[1, /* partial", 2},
		{"[1, // line", 2},
		{"[1, // \xe2\x80", 2},
		{"[true ", 5},
	}
	opts := jdoc.ReaderOptions{Comments: jdoc.SkipComments}
	for _, tc := range tests {
		tz := jdoc.NewTokenizer([]byte(tc.input), false, jdoc.NewReaderState(opts))
		var err error
		for err == nil {
			err = tz.Read()
		}
		if err != jdoc.ErrNeedMoreData {
			t.Errorf("Input %#q: got %v, want %v", tc.input, err, jdoc.ErrNeedMoreData)
			continue
		}
		if got := tz.Consumed(); got != tc.consumed {
			t.Errorf("Input %#q: Consumed = %d, want %d", tc.input, got, tc.consumed)
		}
		if got := tz.State().Offset(); got != tc.consumed {
			t.Errorf("Input %#q: State offset = %d, want %d", tc.input, got, tc.consumed)
		}
	}
}

func TestMultiSegmentToken(t *testing.T) {
	chunks := [][]byte{[]byte(`["ab`), []byte(""), []byte(`cd`), []byte(`ef", 12`), []byte(`34]`)}
	tz := jdoc.NewChunkedTokenizer(chunks, true, jdoc.ReaderState{})

	type seg struct {
		Kind  jdoc.Kind
		Multi bool
		Segs  []string
		Text  string
	}
	var got []seg
	for tz.Read() == nil {
		tok := tz.Token()
		s := seg{Kind: tok.Kind, Multi: tok.IsMultiSegment(), Text: string(tok.Bytes())}
		for _, b := range tok.Segments {
			s.Segs = append(s.Segs, string(b))
		}
		got = append(got, s)
	}
	want := []seg{
		{Kind: jdoc.BeginArray, Text: "["},
		{Kind: jdoc.String, Multi: true, Segs: []string{"ab", "cd", "ef"}, Text: "abcdef"},
		{Kind: jdoc.Number, Multi: true, Segs: []string{"12", "34"}, Text: "1234"},
		{Kind: jdoc.EndArray, Text: "]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestReaderState(t *testing.T) {
	const depth = 70
	input := strings.Repeat(`{"k":[`, depth) + strings.Repeat(`]}`, depth)
	opts := jdoc.ReaderOptions{MaxDepth: 200}

	tz := jdoc.NewTokenizer([]byte(input), true, jdoc.NewReaderState(opts))
	for tz.Depth() < 2*depth {
		if err := tz.Read(); err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	st := tz.State()
	if got := st.Depth(); got != 2*depth {
		t.Errorf("State depth: got %d, want %d", got, 2*depth)
	}
	if got, want := st.Offset(), int64(6*depth); got != want {
		t.Errorf("State offset: got %d, want %d", got, want)
	}
	if got, want := st.Position(), (jdoc.LineCol{Line: 1, Column: 6 * depth}); got != want {
		t.Errorf("State position: got %v, want %v", got, want)
	}
	if got := st.Kind(); got != jdoc.BeginArray {
		t.Errorf("State kind: got %v, want %v", got, jdoc.BeginArray)
	}
	if got := st.Options(); got != opts {
		t.Errorf("State options: got %+v, want %+v", got, opts)
	}

	// Finishing the original must not disturb the snapshot.
	if _, err := drain(tz); err != nil {
		t.Fatalf("Finish original: %v", err)
	}
	for range 2 {
		rest := jdoc.NewTokenizer([]byte(input[st.Offset():]), true, st)
		toks, err := drain(rest)
		if err != nil {
			t.Fatalf("Resume from snapshot: %v", err)
		}
		if len(toks) != 2*depth {
			t.Errorf("Resume: got %d tokens, want %d", len(toks), 2*depth)
		}
		if rest.Depth() != 0 {
			t.Errorf("Resume: final depth %d, want 0", rest.Depth())
		}
	}
}

// A line or paragraph separator inside a line comment is an error wherever
// the input is split, including inside the separator's encoding.
func TestSplitLineSeparator(t *testing.T) {
	opts := jdoc.ReaderOptions{Comments: jdoc.SkipComments}
	for _, input := range []string{
		"[1, // a\xe2\x80\xa8b\n2]",
		"[1, // a\xe2\x80\xa9\n2]",
	} {
		in := []byte(input)
		check := func(how string, err error) {
			t.Helper()
			var serr *jdoc.SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("Input %#q %s: got %v, want *SyntaxError", input, how, err)
				return
			}
			if serr.Offset != 8 || !strings.Contains(serr.Message, "invalid line separator") {
				t.Errorf("Input %#q %s: got %v, want line separator error at offset 8", input, how, serr)
			}
		}

		for i := 0; i <= len(in); i++ {
			_, err := drain(jdoc.NewChunkedTokenizer([][]byte{in[:i], in[i:]}, true, jdoc.NewReaderState(opts)))
			check(fmt.Sprintf("split at %d", i), err)
		}

		// Feed one byte at a time, resuming from each snapshot.
		st := jdoc.NewReaderState(opts)
		var pending []byte
		var err error
	feed:
		for i := 0; i <= len(in); i++ {
			final := i == len(in)
			if !final {
				pending = append(pending, in[i])
			}
			tz := jdoc.NewTokenizer(pending, final, st)
			for {
				err = tz.Read()
				if err == jdoc.ErrNeedMoreData {
					break
				} else if err != nil {
					break feed
				}
			}
			st = tz.State()
			pending = append([]byte(nil), pending[tz.Consumed():]...)
		}
		check("bytewise", err)
	}
}

func TestNewReaderStateInvalid(t *testing.T) {
	bad := jdoc.ReaderOptions{MaxDepth: -1}
	if bad.Validate() == nil {
		t.Fatal("Validate: got nil error for negative depth")
	}
	mtest.MustPanic(t, func() { jdoc.NewReaderState(bad) })

	// Parse reports the same problem as an error.
	if _, err := jdoc.Parse([]byte(`1`), bad); err == nil {
		t.Error("Parse: got nil error for invalid options")
	}
}
