package arbor

/*
BSD 3-Clause License

Copyright (c) 2021, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/arbor/deep"
)

// none is the null node index.
const none = -1

// node is a tree node living in an arena. Relations to other nodes are arena
// indices.
type node[T any] struct {
	value  T
	parent int // none for the root and for free slots
	// slot is the position of the node within its parent's children.
	slot     int
	children []int
	// gen is the generation of children and changes with every insertion or
	// removal of a child.
	gen  uint64
	live bool
}

// arena holds all the nodes of a tree.
//
// The sibling sequence at the top level contains the root only, or nothing if
// the tree is empty. It is addressed with parent == none and carries its own
// generation rootGen.
type arena[T any] struct {
	nodes   []node[T]
	free    []int // recycled slots
	root    int
	rootGen uint64
	clock   uint64 // source of generations
	size    int    // number of live nodes
}

func newArena[T any]() arena[T] {
	return arena[T]{root: none, clock: 1, rootGen: 1}
}

func (a *arena[T]) tick() uint64 {
	a.clock++
	return a.clock
}

// --- Sibling sequences -----------------------------------------------------

func (a *arena[T]) seqLen(parent int) int {
	if parent == none {
		if a.root == none {
			return 0
		}
		return 1
	}
	return len(a.nodes[parent].children)
}

func (a *arena[T]) seqAt(parent, pos int) int {
	if parent == none {
		return a.root
	}
	return a.nodes[parent].children[pos]
}

func (a *arena[T]) seqGen(parent int) uint64 {
	if parent == none {
		return a.rootGen
	}
	return a.nodes[parent].gen
}

// resolve returns the node at position pos of the sibling sequence of parent,
// or none for positions outside the sequence. It panics if the sequence has
// changed since generation gen.
func (a *arena[T]) resolve(parent, pos int, gen uint64) int {
	if parent != none && (parent >= len(a.nodes) || !a.nodes[parent].live) {
		panic(ErrStaleTraverser)
	}
	if a.seqGen(parent) != gen {
		panic(ErrStaleTraverser)
	}
	if pos < 0 || pos >= a.seqLen(parent) {
		return none
	}
	return a.seqAt(parent, pos)
}

// --- Node allocation -------------------------------------------------------

// alloc creates an unlinked node holding v.
func (a *arena[T]) alloc(v T, parent, slot int) int {
	n := node[T]{
		value:  v,
		parent: parent,
		slot:   slot,
		gen:    a.tick(),
		live:   true,
	}
	a.size++
	if l := len(a.free); l > 0 {
		idx := a.free[l-1]
		a.free = a.free[:l-1]
		a.nodes[idx] = n
		return idx
	}
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// release frees the subtree at idx. The caller is responsible for unlinking
// idx from its parent.
func (a *arena[T]) release(idx int) {
	for _, c := range a.nodes[idx].children {
		a.release(c)
	}
	a.nodes[idx] = node[T]{parent: none, gen: a.tick()}
	a.free = append(a.free, idx)
	a.size--
}

// clear drops all nodes. Every traverser into the arena will be stale.
func (a *arena[T]) clear() {
	a.nodes = nil
	a.free = nil
	a.root = none
	a.size = 0
	a.rootGen = a.tick()
}

// --- Linking ---------------------------------------------------------------

// link makes the unlinked node idx the entry at pos of parent's children, or
// the root if parent is none. It returns the position reference of idx.
func (a *arena[T]) link(parent, pos, idx int) ref[T] {
	if parent == none {
		assert(a.root == none, "arena.link: tree already has a root")
		a.root = idx
		a.nodes[idx].parent = none
		a.nodes[idx].slot = 0
		a.rootGen = a.tick()
		return ref[T]{a: a, parent: none, pos: 0, gen: a.rootGen}
	}
	p := &a.nodes[parent]
	p.children = append(p.children, none)
	copy(p.children[pos+1:], p.children[pos:])
	p.children[pos] = idx
	p.gen = a.tick()
	for i := pos; i < len(p.children); i++ {
		a.nodes[p.children[i]].slot = i
	}
	a.nodes[idx].parent = parent
	return ref[T]{a: a, parent: parent, pos: pos, gen: p.gen}
}

// unlink removes the entry at pos of parent's children, or the root if parent
// is none, and returns it.
func (a *arena[T]) unlink(parent, pos int) int {
	if parent == none {
		idx := a.root
		a.root = none
		a.rootGen = a.tick()
		return idx
	}
	p := &a.nodes[parent]
	idx := p.children[pos]
	p.children = append(p.children[:pos], p.children[pos+1:]...)
	p.gen = a.tick()
	for i := pos; i < len(p.children); i++ {
		a.nodes[p.children[i]].slot = i
	}
	a.nodes[idx].parent = none
	return idx
}

// reserve makes room for at least n children under idx. Growing the capacity
// counts as relocation of the sibling sequence.
func (a *arena[T]) reserve(idx, n int) {
	p := &a.nodes[idx]
	if cap(p.children) >= n {
		return
	}
	children := make([]int, len(p.children), n)
	copy(children, p.children)
	p.children = children
	p.gen = a.tick()
}

// --- Subtree copies --------------------------------------------------------

// copyFrom allocates a copy of the subtree at idx of src as an unlinked node
// of a. Values are deep-copied if clone is set, otherwise they are moved by
// plain assignment. src must not be a.
func (a *arena[T]) copyFrom(src *arena[T], idx, parent, slot int, clone bool) int {
	v := src.nodes[idx].value
	if clone {
		v = deep.Copy(v)
	}
	n := a.alloc(v, parent, slot)
	kids := src.nodes[idx].children
	if len(kids) == 0 {
		return n
	}
	children := make([]int, len(kids))
	for i, k := range kids {
		children[i] = a.copyFrom(src, k, n, i, clone)
	}
	a.nodes[n].children = children
	return n
}

// extract returns a compact arena holding a copy of the subtree at idx, with
// the copy of idx as its root.
func (a *arena[T]) extract(idx int, clone bool) arena[T] {
	dst := newArena[T]()
	dst.nodes = make([]node[T], 0, a.countFrom(idx))
	dst.root = dst.copyFrom(a, idx, none, 0, clone)
	return dst
}

func (a *arena[T]) countFrom(idx int) int {
	n := 1
	for _, c := range a.nodes[idx].children {
		n += a.countFrom(c)
	}
	return n
}

// Clone returns a compacted deep copy of the arena. Parent back-references
// are re-derived for the new node positions. This makes arena a
// deep.Cloner, so deep.Ptr[arena[T]] copies trees deeply.
func (a arena[T]) Clone() arena[T] {
	if a.root == none {
		return newArena[T]()
	}
	return a.extract(a.root, true)
}

var _ deep.Cloner[arena[int]] = arena[int]{}
