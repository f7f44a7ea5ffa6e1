package arbor

import "iter"

// Shape is the cursor protocol the structural algorithms work on. C is the
// cursor type itself; Traverser and ConstTraverser implement Shape.
type Shape[C any] interface {
	Valid() bool
	ChildCount() int
	Child(i int) C
}

// Valued is a Shape which gives access to node values.
type Valued[T any, C any] interface {
	Shape[C]
	Value() T
}

// NodeCount returns the number of nodes of the subtree at c, or 0 if c is
// invalid.
func NodeCount[C Shape[C]](c C) int {
	if !c.Valid() {
		return 0
	}
	n := 1
	for i := range c.ChildCount() {
		n += NodeCount(c.Child(i))
	}
	return n
}

// LeafCount returns the number of leaves of the subtree at c, or 0 if c is
// invalid.
func LeafCount[C Shape[C]](c C) int {
	if !c.Valid() {
		return 0
	}
	k := c.ChildCount()
	if k == 0 {
		return 1
	}
	n := 0
	for i := range k {
		n += LeafCount(c.Child(i))
	}
	return n
}

// Depth returns the number of levels of the subtree at c. A single node has
// depth 1, an invalid cursor depth 0.
func Depth[C Shape[C]](c C) int {
	if !c.Valid() {
		return 0
	}
	d := 0
	for i := range c.ChildCount() {
		d = max(d, Depth(c.Child(i)))
	}
	return d + 1
}

// EqualTree reports whether the subtrees at a and b have the same shape and
// equal values in every position. Two invalid cursors are equal.
func EqualTree[T comparable, A Valued[T, A], B Valued[T, B]](a A, b B) bool {
	return EqualTreeFunc[T](a, b, func(x, y T) bool { return x == y })
}

// EqualTreeFunc is like EqualTree, but compares values with eq. Comparison
// stops at the first difference.
func EqualTreeFunc[T any, A Valued[T, A], B Valued[T, B]](a A, b B, eq func(T, T) bool) bool {
	va, vb := a.Valid(), b.Valid()
	if !va || !vb {
		return va == vb
	}
	if !eq(a.Value(), b.Value()) {
		return false
	}
	k := a.ChildCount()
	if k != b.ChildCount() {
		return false
	}
	for i := range k {
		if !EqualTreeFunc[T](a.Child(i), b.Child(i), eq) {
			return false
		}
	}
	return true
}

// Walk visits the subtree at c in pre-order, calling fn with each cursor and
// its depth, starting at 0. If fn returns false, the children of that node
// are skipped. Walk does nothing for an invalid cursor.
func Walk[C Shape[C]](c C, fn func(c C, depth int) bool) {
	if !c.Valid() {
		return
	}
	walk(c, 0, fn)
}

func walk[C Shape[C]](c C, depth int, fn func(C, int) bool) {
	if !fn(c, depth) {
		return
	}
	for i := range c.ChildCount() {
		walk(c.Child(i), depth+1, fn)
	}
}

// PreOrder iterates over the subtree at c in pre-order, yielding every cursor
// together with its depth.
func PreOrder[C Shape[C]](c C) iter.Seq2[C, int] {
	return func(yield func(C, int) bool) {
		if c.Valid() {
			preOrder(c, 0, yield)
		}
	}
}

func preOrder[C Shape[C]](c C, depth int, yield func(C, int) bool) bool {
	if !yield(c, depth) {
		return false
	}
	for i := range c.ChildCount() {
		if !preOrder(c.Child(i), depth+1, yield) {
			return false
		}
	}
	return true
}
