// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// A bitStack records the kind of each open container, one bit per level: 1
// for an object, 0 for an array. The first 64 levels are held inline.
type bitStack struct {
	depth int
	bits  uint64
	more  []uint64
}

func (b *bitStack) push(isObject bool) {
	i := b.depth
	b.depth++
	if i < 64 {
		b.bits = setBit(b.bits, i, isObject)
		return
	}
	i -= 64
	if w := i / 64; w == len(b.more) {
		b.more = append(b.more, 0)
	}
	b.more[i/64] = setBit(b.more[i/64], i%64, isObject)
}

func (b *bitStack) pop() {
	if b.depth > 0 {
		b.depth--
	}
}

// inObject reports whether the innermost open container is an object.
func (b *bitStack) inObject() bool {
	i := b.depth - 1
	switch {
	case i < 0:
		return false
	case i < 64:
		return b.bits&(1<<i) != 0
	}
	i -= 64
	return b.more[i/64]&(1<<(i%64)) != 0
}

// clone returns a copy of b that shares no storage with it.
func (b bitStack) clone() bitStack {
	if b.more != nil {
		b.more = append([]uint64(nil), b.more...)
	}
	return b
}

func setBit(w uint64, i int, on bool) uint64 {
	if on {
		return w | 1<<i
	}
	return w &^ (1 << i)
}
