package arbor

/*
BSD 3-Clause License

Copyright (c) 2021, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/arbor/deep"
)

// Tree is a mutable tree of values of type T. A tree has either no nodes or
// exactly one root node.
//
// A tree created by
//
//	&Tree[T]{}
//
// or by New is a valid and empty tree.
//
// Assigning a Tree by value aliases its nodes. Use Clone for a deep copy and
// Take to move the nodes to a new owner.
type Tree[T any] struct {
	store deep.Ptr[arena[T]]
}

// New creates an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// WithRoot creates a tree with a single node holding v.
func WithRoot[T any](v T) *Tree[T] {
	t := New[T]()
	a := t.own()
	a.link(none, 0, a.alloc(v, none, 0))
	return t
}

// FromCursor creates a tree from a deep copy of the subtree at c, which may
// point into any tree. If c is invalid, the result is empty.
func FromCursor[T any](c Position[T]) *Tree[T] {
	r := c.position()
	idx := r.node()
	if idx == none {
		return New[T]()
	}
	sub := r.a.extract(idx, true)
	return &Tree[T]{store: deep.New(&sub)}
}

func (t *Tree[T]) own() *arena[T] {
	if t.store.IsNil() {
		a := newArena[T]()
		t.store.Reset(&a)
	}
	return t.store.Get()
}

// top is the position of the root within the top level sequence.
func (t *Tree[T]) top() ref[T] {
	if t.store.IsNil() {
		return ref[T]{}
	}
	a := t.store.Get()
	return ref[T]{a: a, parent: none, pos: 0, gen: a.rootGen}
}

// IsEmpty reports whether t has no root.
func (t *Tree[T]) IsEmpty() bool {
	return t.store.IsNil() || t.store.Get().root == none
}

// Len returns the number of nodes of t.
func (t *Tree[T]) Len() int {
	if t.store.IsNil() {
		return 0
	}
	return t.store.Get().size
}

// Root returns the value of the root node. Calling Root on an empty tree
// panics.
func (t *Tree[T]) Root() T {
	assert(!t.IsEmpty(), "Root called for empty tree")
	a := t.store.Get()
	return a.nodes[a.root].value
}

// SetRoot replaces the value of the root node. Calling SetRoot on an empty
// tree panics.
func (t *Tree[T]) SetRoot(v T) {
	assert(!t.IsEmpty(), "SetRoot called for empty tree")
	a := t.store.Get()
	a.nodes[a.root].value = v
}

// Entrance returns a traverser to the root. For an empty tree the traverser is
// invalid, but may be used as the insertion point of the root.
func (t *Tree[T]) Entrance() Traverser[T] {
	return Traverser[T]{r: t.top()}
}

// CEntrance returns a read-only traverser to the root.
func (t *Tree[T]) CEntrance() ConstTraverser[T] {
	return ConstTraverser[T]{r: t.top()}
}

// Subtree returns a deep copy of the i-th child of the root. Calling Subtree
// on an empty tree or with an index out of range panics.
func (t *Tree[T]) Subtree(i int) *Tree[T] {
	assert(!t.IsEmpty(), "Subtree called for empty tree")
	return FromCursor[T](t.CEntrance().Child(i))
}

// target resolves at to a node of t.
func (t *Tree[T]) target(at Position[T]) (ref[T], int, error) {
	r := at.position()
	if r.a == nil {
		return r, none, ErrNoNode
	}
	if r.a != t.store.Get() {
		return r, none, ErrForeignTraverser
	}
	idx := r.node()
	if idx == none {
		return r, none, ErrNoNode
	}
	return r, idx, nil
}

// ReserveChildren makes room for at least n children of the node at at.
// If this grows the capacity, traversers into the children of at are
// invalidated. Reserving saves reallocations during a batch of insertions,
// but does not keep traversers valid: every insertion into a sibling
// sequence invalidates all traversers into it, reserved or not.
func (t *Tree[T]) ReserveChildren(at Position[T], n int) error {
	_, idx, err := t.target(at)
	if err != nil {
		return err
	}
	t.store.Get().reserve(idx, n)
	return nil
}

// --- Insertion -------------------------------------------------------------

// producer creates an unlinked node or subtree within an arena.
type producer[T any] func(a *arena[T]) int

func valueOf[T any](v T) producer[T] {
	return func(a *arena[T]) int {
		return a.alloc(v, none, 0)
	}
}

func emplaced[T any](init func(*T)) producer[T] {
	return func(a *arena[T]) int {
		var v T
		if init != nil {
			init(&v)
		}
		return a.alloc(v, none, 0)
	}
}

// copyOf prepares a deep copy of the subtree at src. The copy is taken
// before the destination is modified, making it safe to copy a subtree
// into its own tree.
func copyOf[T any](src Position[T]) (producer[T], error) {
	r := src.position()
	idx := r.node()
	if idx == none {
		return nil, ErrNoNode
	}
	tmp := r.a.extract(idx, true)
	return func(a *arena[T]) int {
		return a.copyFrom(&tmp, tmp.root, none, 0, false)
	}, nil
}

// insertBefore links the result of mk as the sibling preceding at. All
// checks are done before the tree is modified.
func (t *Tree[T]) insertBefore(at Position[T], mk producer[T]) (Traverser[T], error) {
	r := at.position()
	if r.a == nil {
		if !t.IsEmpty() {
			tracer().Debugf("insert: null traverser for non-empty tree")
			return Traverser[T]{}, ErrInsertBeforeEnd
		}
		return t.makeRoot(mk), nil
	}
	if r.a != t.store.Get() {
		return Traverser[T]{}, ErrForeignTraverser
	}
	a := r.a
	if r.node() == none {
		if a.root == none {
			return t.makeRoot(mk), nil
		}
		return Traverser[T]{}, ErrInsertBeforeEnd
	}
	if r.parent == none {
		return Traverser[T]{}, ErrInsertBeforeRoot
	}
	return Traverser[T]{r: a.link(r.parent, r.pos, mk(a))}, nil
}

func (t *Tree[T]) makeRoot(mk producer[T]) Traverser[T] {
	a := t.own()
	tracer().Debugf("insert: creating root")
	return Traverser[T]{r: a.link(none, 0, mk(a))}
}

// appendUnder links the result of mk as the last child of the node at at.
func (t *Tree[T]) appendUnder(at Position[T], mk producer[T]) (Traverser[T], error) {
	_, idx, err := t.target(at)
	if err != nil {
		return Traverser[T]{}, err
	}
	a := t.store.Get()
	n := mk(a)
	return Traverser[T]{r: a.link(idx, len(a.nodes[idx].children), n)}, nil
}

// Insert adds a node holding v as the sibling immediately preceding the node
// at at, returning a traverser to the new node.
//
// Inserting before the root fails with ErrInsertBeforeRoot. Inserting before
// a past-the-end traverser fails with ErrInsertBeforeEnd, unless the tree is
// empty, in which case the new node becomes the root. A failed insertion
// leaves the tree unchanged.
//
// All traversers into the sibling sequence of at are invalidated.
func (t *Tree[T]) Insert(at Position[T], v T) (Traverser[T], error) {
	return t.insertBefore(at, valueOf(v))
}

// Emplace is like Insert, but initializes the new value in place by calling
// init, which may be nil.
func (t *Tree[T]) Emplace(at Position[T], init func(*T)) (Traverser[T], error) {
	return t.insertBefore(at, emplaced(init))
}

// InsertSubtree is like Insert, but inserts a deep copy of the subtree at src.
// src may point into any tree, including t.
func (t *Tree[T]) InsertSubtree(at Position[T], src Position[T]) (Traverser[T], error) {
	mk, err := copyOf(src)
	if err != nil {
		return Traverser[T]{}, err
	}
	return t.insertBefore(at, mk)
}

// InsertTree is like InsertSubtree, with src's root as the subtree to copy.
func (t *Tree[T]) InsertTree(at Position[T], src *Tree[T]) (Traverser[T], error) {
	if src.IsEmpty() {
		return Traverser[T]{}, ErrNoNode
	}
	return t.InsertSubtree(at, src.CEntrance())
}

// InsertMove is like InsertTree, but moves the nodes of src instead of
// copying them. On success, src is empty and all traversers into src are
// invalidated. src must not be t.
func (t *Tree[T]) InsertMove(at Position[T], src *Tree[T]) (Traverser[T], error) {
	mk, err := t.mover(src)
	if err != nil {
		return Traverser[T]{}, err
	}
	n, err := t.insertBefore(at, mk)
	if err == nil {
		src.vacate()
	}
	return n, err
}

// AppendChild adds a node holding v as the last child of the node at at,
// returning a traverser to the new node. at may be the root, but must
// reference a node; otherwise AppendChild fails with ErrNoNode.
//
// All traversers into the children of at are invalidated.
func (t *Tree[T]) AppendChild(at Position[T], v T) (Traverser[T], error) {
	return t.appendUnder(at, valueOf(v))
}

// EmplaceBackChild is like AppendChild, but initializes the new value in
// place by calling init, which may be nil.
func (t *Tree[T]) EmplaceBackChild(at Position[T], init func(*T)) (Traverser[T], error) {
	return t.appendUnder(at, emplaced(init))
}

// AppendSubtree is like AppendChild, but appends a deep copy of the subtree
// at src. src may point into any tree, including t.
func (t *Tree[T]) AppendSubtree(at Position[T], src Position[T]) (Traverser[T], error) {
	mk, err := copyOf(src)
	if err != nil {
		return Traverser[T]{}, err
	}
	return t.appendUnder(at, mk)
}

// AppendTree is like AppendSubtree, with src's root as the subtree to copy.
func (t *Tree[T]) AppendTree(at Position[T], src *Tree[T]) (Traverser[T], error) {
	if src.IsEmpty() {
		return Traverser[T]{}, ErrNoNode
	}
	return t.AppendSubtree(at, src.CEntrance())
}

// AppendMove is like AppendTree, but moves the nodes of src instead of
// copying them. On success, src is empty. src must not be t.
func (t *Tree[T]) AppendMove(at Position[T], src *Tree[T]) (Traverser[T], error) {
	mk, err := t.mover(src)
	if err != nil {
		return Traverser[T]{}, err
	}
	n, err := t.appendUnder(at, mk)
	if err == nil {
		src.vacate()
	}
	return n, err
}

// mover prepares grafting the nodes of src. Values are transferred without
// cloning, but every node is re-allocated in t's arena, so a move costs
// O(n) in the size of src.
func (t *Tree[T]) mover(src *Tree[T]) (producer[T], error) {
	assert(src != t && (t.store.IsNil() || !t.store.Same(src.store)),
		"cannot move a tree into itself")
	if src.IsEmpty() {
		return nil, ErrNoNode
	}
	sa := src.store.Get()
	return func(a *arena[T]) int {
		return a.copyFrom(sa, sa.root, none, 0, false)
	}, nil
}

// vacate empties t after its nodes have been moved elsewhere.
func (t *Tree[T]) vacate() {
	t.store.Get().clear()
	t.store.Reset(nil)
}

// --- Removal ---------------------------------------------------------------

// Erase removes the subtree at at. All traversers into the sibling sequence
// of at and into the removed subtree are invalidated.
func (t *Tree[T]) Erase(at Position[T]) error {
	r, idx, err := t.target(at)
	if err != nil {
		return err
	}
	a := t.store.Get()
	a.unlink(r.parent, r.pos)
	a.release(idx)
	return nil
}

// Extract moves the subtree at at out of t into a new tree.
func (t *Tree[T]) Extract(at Position[T]) (*Tree[T], error) {
	_, idx, err := t.target(at)
	if err != nil {
		return nil, err
	}
	sub := t.store.Get().extract(idx, false)
	if err = t.Erase(at); err != nil {
		return nil, err
	}
	return &Tree[T]{store: deep.New(&sub)}, nil
}

// Clear removes all nodes of t. All traversers into t are invalidated.
func (t *Tree[T]) Clear() {
	if !t.store.IsNil() {
		t.store.Get().clear()
	}
}

// --- Whole trees -----------------------------------------------------------

// Swap exchanges the nodes of t and other in constant time. Traversers follow
// their nodes.
func (t *Tree[T]) Swap(other *Tree[T]) {
	t.store.Swap(&other.store)
}

// Clone returns a deep copy of t. Values implementing deep.Cloner are copied
// with their Clone method.
func (t *Tree[T]) Clone() *Tree[T] {
	return &Tree[T]{store: t.store.Clone()}
}

// Take moves the nodes of t to a new tree and leaves t empty. Traversers
// follow their nodes.
func (t *Tree[T]) Take() *Tree[T] {
	return &Tree[T]{store: t.store.Take()}
}

// Equal reports whether a and b have the same shape and equal values at
// every node.
func Equal[T comparable](a, b *Tree[T]) bool {
	return EqualTree[T](a.CEntrance(), b.CEntrance())
}

// EqualFunc is like Equal, but compares values using eq.
func EqualFunc[T any](a, b *Tree[T], eq func(T, T) bool) bool {
	return EqualTreeFunc[T](a.CEntrance(), b.CEntrance(), eq)
}
