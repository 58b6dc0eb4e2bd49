// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package stack implements a growable stack whose storage comes from a pool.
package stack

import "github.com/creachadair/jdoc/internal/pool"

// Stack is a LIFO stack of T values backed by pooled storage.
type Stack[T any] struct {
	p     *pool.Slices[T]
	items []T
}

// New returns an empty stack with room for capacity elements, whose storage
// is taken from and returned to p.
func New[T any](p *pool.Slices[T], capacity int) *Stack[T] {
	return &Stack[T]{p: p, items: p.Get(capacity)}
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = s.p.Grow(s.items, 1)
	s.items = append(s.items, v)
}

// Pop removes and returns the top of the stack.
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	n := len(s.items) - 1
	v := s.items[n]
	s.items = s.items[:n]
	return v, true
}

// PeekRef allows modifying the top element in place.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

// Len reports the number of elements on the stack.
func (s *Stack[T]) Len() int { return len(s.items) }

// Release returns the stack's storage to its pool. The stack is empty
// afterward and may be reused.
func (s *Stack[T]) Release() {
	s.p.Put(s.items)
	s.items = nil
}
