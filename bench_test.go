// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jdoc"
)

// benchInput generates a JSON array of n records with mixed value types.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i := range n {
		if i > 0 {
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, `  {"id": %d, "name": "item\t%d", "score": %d.%03de-2, "ok": %v, "tags": ["a", "bé", null], "meta": {"n": %d}}`,
			i, i, i*7, i%1000, i%2 == 0, -i)
	}
	buf.WriteString("\n]\n")
	return buf.Bytes()
}

func BenchmarkTokenizer(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Tokenizer", func(b *testing.B) {
		st := jdoc.NewReaderState(jdoc.ReaderOptions{})
		for b.Loop() {
			tz := jdoc.NewTokenizer(input, true, st)
			for {
				err := tz.Read()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Chunked", func(b *testing.B) {
		var chunks [][]byte
		for rest := input; len(rest) > 0; {
			n := min(len(rest), 512)
			chunks = append(chunks, rest[:n])
			rest = rest[n:]
		}
		st := jdoc.NewReaderState(jdoc.ReaderOptions{})
		for b.Loop() {
			tz := jdoc.NewChunkedTokenizer(chunks, true, st)
			for {
				err := tz.Read()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("Document", func(b *testing.B) {
		for b.Loop() {
			doc, err := jdoc.Parse(input, jdoc.ReaderOptions{})
			if err != nil {
				b.Fatalf("Parse: %v", err)
			}
			doc.Close()
		}
	})

	b.Run("Lookup", func(b *testing.B) {
		doc, err := jdoc.Parse(input, jdoc.ReaderOptions{})
		if err != nil {
			b.Fatalf("Parse: %v", err)
		}
		defer doc.Close()
		root := doc.Root()
		for b.Loop() {
			e, err := root.Index(1500)
			if err != nil {
				b.Fatalf("Index: %v", err)
			}
			if _, err := e.Property("score"); err != nil {
				b.Fatalf("Property: %v", err)
			}
		}
	})
}
