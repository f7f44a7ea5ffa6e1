package arbor

import (
	"cmp"
	"iter"
)

// ref is the position of an entry within a sibling sequence of an arena.
// The zero value (with a == nil) is the null reference.
type ref[T any] struct {
	a      *arena[T]
	parent int // none for the top level sequence holding the root
	pos    int
	gen    uint64 // generation of the sibling sequence when ref was created
}

func (r ref[T]) node() int {
	if r.a == nil {
		return none
	}
	return r.a.resolve(r.parent, r.pos, r.gen)
}

func (r ref[T]) mustNode() int {
	idx := r.node()
	assert(idx != none, "traverser does not reference a node")
	return idx
}

func (r ref[T]) valid() bool {
	return r.node() != none
}

func (r ref[T]) value() T {
	return r.a.nodes[r.mustNode()].value
}

func (r ref[T]) parentRef() ref[T] {
	idx := r.node()
	if idx == none || r.parent == none {
		return ref[T]{}
	}
	p := r.a.nodes[r.parent]
	return ref[T]{a: r.a, parent: p.parent, pos: p.slot, gen: r.a.seqGen(p.parent)}
}

func (r ref[T]) childRef(i int) ref[T] {
	idx := r.mustNode()
	n := &r.a.nodes[idx]
	assert(i >= 0 && i < len(n.children), "child index out of range")
	return ref[T]{a: r.a, parent: idx, pos: i, gen: n.gen}
}

func (r ref[T]) begin() ref[T] {
	idx := r.mustNode()
	return ref[T]{a: r.a, parent: idx, pos: 0, gen: r.a.nodes[idx].gen}
}

func (r ref[T]) end() ref[T] {
	idx := r.mustNode()
	n := &r.a.nodes[idx]
	return ref[T]{a: r.a, parent: idx, pos: len(n.children), gen: n.gen}
}

func (r ref[T]) offset(n int) ref[T] {
	r.pos += n
	return r
}

func (r ref[T]) childCount() int {
	return len(r.a.nodes[r.mustNode()].children)
}

// equal compares node identity. Invalid references are equal if they denote
// the same position of the same sibling sequence, or if both are null.
func (r ref[T]) equal(o ref[T]) bool {
	if r.a != o.a {
		return false
	}
	n1, n2 := r.node(), o.node()
	if n1 != none || n2 != none {
		return n1 == n2
	}
	return r.parent == o.parent && r.pos == o.pos
}

// compare orders positions within a sibling sequence. The order of positions
// in different sequences is arbitrary, but consistent.
func (r ref[T]) compare(o ref[T]) int {
	if r.parent != o.parent {
		return cmp.Compare(r.parent, o.parent)
	}
	return cmp.Compare(r.pos, o.pos)
}

// Position is implemented by Traverser and ConstTraverser. Tree operations
// accept either of them.
type Position[T any] interface {
	position() ref[T]
}

// --- Traverser -------------------------------------------------------------

// Traverser is a read-write reference to a node of a tree, and at the same
// time a random-access iterator over the sibling sequence holding the node.
//
// The zero value is the null traverser, which does not reference any node.
// Begin and End delimit the children of the referenced node, whereas Next,
// Prev, Offset and At step along the siblings.
//
// A traverser is invalidated by insertion into or removal from the sibling
// sequence it points into; see package documentation.
type Traverser[T any] struct {
	r ref[T]
}

func (t Traverser[T]) position() ref[T] { return t.r }

// Const returns a read-only traverser for the same position.
func (t Traverser[T]) Const() ConstTraverser[T] {
	return ConstTraverser[T]{r: t.r}
}

// Valid reports whether t references an actual node, i.e. is neither null nor
// past-the-end.
func (t Traverser[T]) Valid() bool { return t.r.valid() }

// Value returns the value of the referenced node. Calling Value on an invalid
// traverser panics.
func (t Traverser[T]) Value() T { return t.r.value() }

// Set replaces the value of the referenced node.
func (t Traverser[T]) Set(v T) {
	t.r.a.nodes[t.r.mustNode()].value = v
}

// Update calls fn with a pointer to the value of the referenced node. fn must
// not modify the tree.
func (t Traverser[T]) Update(fn func(*T)) {
	fn(&t.r.a.nodes[t.r.mustNode()].value)
}

// IsLeaf reports whether the referenced node has no children.
func (t Traverser[T]) IsLeaf() bool { return t.r.childCount() == 0 }

// ChildCount returns the number of children of the referenced node.
func (t Traverser[T]) ChildCount() int { return t.r.childCount() }

// Parent returns a traverser to the parent of the referenced node. For the
// root and for invalid traversers it returns the null traverser.
func (t Traverser[T]) Parent() Traverser[T] { return Traverser[T]{r: t.r.parentRef()} }

// ToParent moves t to the parent of the referenced node, see Parent.
func (t *Traverser[T]) ToParent() *Traverser[T] {
	t.r = t.r.parentRef()
	return t
}

// Child returns a traverser to the i-th child of the referenced node.
// Out-of-range indices panic.
func (t Traverser[T]) Child(i int) Traverser[T] { return Traverser[T]{r: t.r.childRef(i)} }

// ToChild moves t to the i-th child of the referenced node.
func (t *Traverser[T]) ToChild(i int) *Traverser[T] {
	t.r = t.r.childRef(i)
	return t
}

// Begin returns a traverser to the first child of the referenced node. For a
// leaf, Begin equals End.
func (t Traverser[T]) Begin() Traverser[T] { return Traverser[T]{r: t.r.begin()} }

// End returns the past-the-end traverser for the children of the referenced
// node.
func (t Traverser[T]) End() Traverser[T] { return Traverser[T]{r: t.r.end()} }

// Next returns a traverser to the next sibling.
func (t Traverser[T]) Next() Traverser[T] { return Traverser[T]{r: t.r.offset(1)} }

// Prev returns a traverser to the previous sibling.
func (t Traverser[T]) Prev() Traverser[T] { return Traverser[T]{r: t.r.offset(-1)} }

// Offset returns a traverser n siblings away. n may be negative.
func (t Traverser[T]) Offset(n int) Traverser[T] { return Traverser[T]{r: t.r.offset(n)} }

// Advance moves t by n siblings.
func (t *Traverser[T]) Advance(n int) *Traverser[T] {
	t.r = t.r.offset(n)
	return t
}

// At returns the value of the sibling n positions away.
func (t Traverser[T]) At(n int) T { return t.r.offset(n).value() }

// Distance returns the number of sibling positions from o to t. Both have to
// iterate over the same sibling sequence.
func (t Traverser[T]) Distance(o Position[T]) int { return t.r.pos - o.position().pos }

// Compare orders t and o by sibling position, returning -1, 0 or +1.
func (t Traverser[T]) Compare(o Position[T]) int { return t.r.compare(o.position()) }

// Equal reports whether t and o reference the same node, or the same
// position if both are invalid.
func (t Traverser[T]) Equal(o Position[T]) bool { return t.r.equal(o.position()) }

// Children iterates over the children of the referenced node.
func (t Traverser[T]) Children() iter.Seq[Traverser[T]] {
	return func(yield func(Traverser[T]) bool) {
		for c := t.Begin(); c.Valid(); c = c.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// --- ConstTraverser --------------------------------------------------------

// ConstTraverser is the read-only variant of Traverser. There is no
// conversion back to Traverser.
type ConstTraverser[T any] struct {
	r ref[T]
}

func (t ConstTraverser[T]) position() ref[T] { return t.r }

// Valid reports whether t references an actual node.
func (t ConstTraverser[T]) Valid() bool { return t.r.valid() }

// Value returns the value of the referenced node.
func (t ConstTraverser[T]) Value() T { return t.r.value() }

// IsLeaf reports whether the referenced node has no children.
func (t ConstTraverser[T]) IsLeaf() bool { return t.r.childCount() == 0 }

// ChildCount returns the number of children of the referenced node.
func (t ConstTraverser[T]) ChildCount() int { return t.r.childCount() }

// Parent returns a traverser to the parent of the referenced node.
func (t ConstTraverser[T]) Parent() ConstTraverser[T] {
	return ConstTraverser[T]{r: t.r.parentRef()}
}

// ToParent moves t to the parent of the referenced node.
func (t *ConstTraverser[T]) ToParent() *ConstTraverser[T] {
	t.r = t.r.parentRef()
	return t
}

// Child returns a traverser to the i-th child of the referenced node.
func (t ConstTraverser[T]) Child(i int) ConstTraverser[T] {
	return ConstTraverser[T]{r: t.r.childRef(i)}
}

// ToChild moves t to the i-th child of the referenced node.
func (t *ConstTraverser[T]) ToChild(i int) *ConstTraverser[T] {
	t.r = t.r.childRef(i)
	return t
}

// Begin returns a traverser to the first child of the referenced node.
func (t ConstTraverser[T]) Begin() ConstTraverser[T] { return ConstTraverser[T]{r: t.r.begin()} }

// End returns the past-the-end traverser for the children of the referenced node.
func (t ConstTraverser[T]) End() ConstTraverser[T] { return ConstTraverser[T]{r: t.r.end()} }

// Next returns a traverser to the next sibling.
func (t ConstTraverser[T]) Next() ConstTraverser[T] { return ConstTraverser[T]{r: t.r.offset(1)} }

// Prev returns a traverser to the previous sibling.
func (t ConstTraverser[T]) Prev() ConstTraverser[T] { return ConstTraverser[T]{r: t.r.offset(-1)} }

// Offset returns a traverser n siblings away.
func (t ConstTraverser[T]) Offset(n int) ConstTraverser[T] {
	return ConstTraverser[T]{r: t.r.offset(n)}
}

// Advance moves t by n siblings.
func (t *ConstTraverser[T]) Advance(n int) *ConstTraverser[T] {
	t.r = t.r.offset(n)
	return t
}

// At returns the value of the sibling n positions away.
func (t ConstTraverser[T]) At(n int) T { return t.r.offset(n).value() }

// Distance returns the number of sibling positions from o to t.
func (t ConstTraverser[T]) Distance(o Position[T]) int { return t.r.pos - o.position().pos }

// Compare orders t and o by sibling position.
func (t ConstTraverser[T]) Compare(o Position[T]) int { return t.r.compare(o.position()) }

// Equal reports whether t and o reference the same node.
func (t ConstTraverser[T]) Equal(o Position[T]) bool { return t.r.equal(o.position()) }

// Children iterates over the children of the referenced node.
func (t ConstTraverser[T]) Children() iter.Seq[ConstTraverser[T]] {
	return func(yield func(ConstTraverser[T]) bool) {
		for c := t.Begin(); c.Valid(); c = c.Next() {
			if !yield(c) {
				return
			}
		}
	}
}
