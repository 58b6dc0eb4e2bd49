// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxDepth is the nesting limit used when ReaderOptions.MaxDepth is 0.
const DefaultMaxDepth = 1000

// CommentHandling selects how the tokenizer treats comments. Comments are a
// non-standard extension of JSON: C++ style block comments (/* ... */) and
// line comments (// ...).
type CommentHandling byte

// Constants defining the valid CommentHandling values.
const (
	DisallowComments CommentHandling = iota // report comments as syntax errors
	SkipComments                            // consume comments silently
	AllowComments                           // report comments as Comment tokens
)

func (c CommentHandling) String() string {
	switch c {
	case DisallowComments:
		return "disallow"
	case SkipComments:
		return "skip"
	case AllowComments:
		return "allow"
	}
	return fmt.Sprintf("CommentHandling(%d)", byte(c))
}

// ParseCommentHandling parses the name of a comment handling mode, one of
// "disallow", "skip", or "allow".
func ParseCommentHandling(s string) (CommentHandling, error) {
	switch strings.ToLower(s) {
	case "disallow", "":
		return DisallowComments, nil
	case "skip":
		return SkipComments, nil
	case "allow":
		return AllowComments, nil
	}
	return 0, fmt.Errorf("unknown comment handling %q", s)
}

// ReaderOptions control the grammar accepted by a Tokenizer.
// The zero value accepts standard JSON only, with DefaultMaxDepth.
type ReaderOptions struct {
	// Accept a comma after the last element of an array or the last member
	// of an object.
	AllowTrailingCommas bool

	// How to treat comments.
	Comments CommentHandling

	// The maximum nesting depth of objects and arrays. If zero, the default
	// is DefaultMaxDepth.
	MaxDepth int

	// Accept a sequence of top-level values rather than exactly one.
	AllowMultipleValues bool
}

// Validate reports whether o is a usable set of options.
func (o ReaderOptions) Validate() error {
	var errs []error
	if o.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("invalid max depth %d", o.MaxDepth))
	}
	if o.Comments > AllowComments {
		errs = append(errs, fmt.Errorf("invalid comment handling %v", o.Comments))
	}
	return errors.Join(errs...)
}

func (o ReaderOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
