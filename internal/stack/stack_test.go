// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package stack

import (
	"testing"

	"github.com/creachadair/jdoc/internal/pool"
)

func TestStack(t *testing.T) {
	var p pool.Slices[int]
	s := New(&p, 2)

	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack reported a value")
	}
	if s.PeekRef() != nil {
		t.Error("PeekRef on empty stack is not nil")
	}

	for i := range 100 {
		s.Push(i)
	}
	if s.Len() != 100 {
		t.Fatalf("Len: got %d, want 100", s.Len())
	}

	*s.PeekRef() += 1000
	if v := *s.PeekRef(); v != 1099 {
		t.Errorf("PeekRef after update: got %d, want 1099", v)
	}
	for want := 1099; s.Len() > 0; want = s.Len() - 1 {
		v, ok := s.Pop()
		if !ok || v != want {
			t.Fatalf("Pop: got %d, %v; want %d, true", v, ok, want)
		}
	}
}

func TestRelease(t *testing.T) {
	var p pool.Slices[string]
	s := New(&p, 4)
	s.Push("a")
	s.Push("b")
	s.Release()

	if s.Len() != 0 {
		t.Errorf("Len after Release: got %d, want 0", s.Len())
	}
	s.Push("c") // reusable after release
	if v := *s.PeekRef(); v != "c" {
		t.Errorf("PeekRef: got %q, want %q", v, "c")
	}
}
