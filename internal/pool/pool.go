// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package pool provides shared pools of reusable slices.
//
// Slices are grouped into buckets by capacity, each a power of two. A slice
// returned with Put is cleared over its full capacity before it is made
// available again, so the pool never hands one caller's data to another.
package pool

import (
	"math/bits"
	"sync"
)

const (
	minShift = 4  // smallest bucket: 16 elements
	maxShift = 26 // largest bucket: 64Mi elements
)

// Slices is a pool of slices of T bucketed by power-of-two capacity.
// The zero value is ready for use. A Slices must not be copied after first use.
type Slices[T any] struct {
	buckets [maxShift - minShift + 1]sync.Pool
}

// Get returns an empty slice with capacity at least n.  Requests larger than
// the largest bucket are allocated directly and are not retained by Put.
func (p *Slices[T]) Get(n int) []T {
	b := bucketFor(n)
	if b < 0 {
		return make([]T, 0, n)
	}
	if v, ok := p.buckets[b].Get().(*[]T); ok {
		return (*v)[:0]
	}
	return make([]T, 0, 1<<(b+minShift))
}

// Put clears s and returns it to the pool. Slices whose capacity is not
// exactly a bucket size are dropped.
func (p *Slices[T]) Put(s []T) {
	c := cap(s)
	if c == 0 {
		return
	}
	s = s[:c]
	clear(s)
	b := bucketFor(c)
	if b < 0 || 1<<(b+minShift) != c {
		return
	}
	s = s[:0]
	p.buckets[b].Put(&s)
}

// Grow returns s with capacity for at least n more elements, doubling its
// capacity as needed. If a new slice is needed, the contents of s are copied
// and s is returned to the pool.
func (p *Slices[T]) Grow(s []T, n int) []T {
	need := len(s) + n
	if need <= cap(s) {
		return s
	}
	next := max(2*cap(s), need)
	out := append(p.Get(next), s...)
	p.Put(s)
	return out
}

// Shrink returns a slice with the contents of s in the smallest bucket that
// holds len(s) elements. If s already uses that bucket, it is returned as-is;
// otherwise s is returned to the pool.
func (p *Slices[T]) Shrink(s []T) []T {
	want := max(len(s), 1)
	b := bucketFor(want)
	if b < 0 || cap(s) <= 1<<(b+minShift) {
		return s
	}
	out := append(p.Get(want), s...)
	p.Put(s)
	return out
}

// bucketFor returns the index of the smallest bucket with capacity for n
// elements, or -1 if n exceeds the largest bucket.
func bucketFor(n int) int {
	if n <= 1<<minShift {
		return 0
	}
	shift := bits.Len(uint(n - 1))
	if shift > maxShift {
		return -1
	}
	return shift - minShift
}

// Bytes is the shared pool of byte buffers, used for document text and
// decoding scratch space.
var Bytes Slices[byte]
