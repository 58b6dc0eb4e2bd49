// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdoc implements a resumable JSON tokenizer and a read-only document
// model indexed by a flat table of token rows.
//
// # Tokenizing
//
// The Tokenizer type reads lexical tokens from input held in memory, either a
// single buffer or a sequence of chunks. Construct a tokenizer and call its
// Read method to advance through the input. Read returns nil when a token is
// available, and io.EOF when the input is complete:
//
//	tz := jdoc.NewTokenizer(input, true, jdoc.NewReaderState(opts))
//	for tz.Read() == nil {
//	   log.Printf("Next token: %v", tz.Token())
//	}
//
// Malformed input is reported as an error of concrete type *jdoc.SyntaxError,
// giving the line, column, and offset where the problem was detected.
//
// # Resuming
//
// The input given to a tokenizer need not be complete. If the input is not
// marked final and ends partway through a token, Read returns ErrNeedMoreData
// and the tokenizer stays at the end of the last complete token. To continue,
// construct a new tokenizer from the State of the old one, over the bytes it
// did not consume followed by the next block of input:
//
//	st := tz.State()
//	rest := append(rest[tz.Consumed():], more...)
//	tz = jdoc.NewTokenizer(rest, isLast, st)
//
// Tokens reported either way have the same kinds, text, and locations.
//
// # Documents
//
// Parse reads a complete JSON text into a Document. A document records one
// fixed-size row per token, and decodes values only on demand through the
// accessors of Element:
//
//	doc, err := jdoc.Parse(data, jdoc.ReaderOptions{})
//	if err != nil {
//	   log.Fatalf("Parse: %v", err)
//	}
//	defer doc.Close()
//	v, err := doc.Root().Property("name")
//
// Arrays whose elements are all scalars are indexed in constant time. Object
// properties are found by scanning backward from the end of the object, so
// that when names are duplicated the last member wins.
//
// The rows of a document and, when it copies its input, the source bytes come
// from shared pools. Close returns them, clearing their contents first.
package jdoc
