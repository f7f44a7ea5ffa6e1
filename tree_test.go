package arbor

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func must[T any](tr Traverser[T], err error) Traverser[T] {
	if err != nil {
		panic(err)
	}
	return tr
}

func expectPanic(t *testing.T, want any, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic, got none")
			return
		}
		if want != nil && r != want {
			t.Errorf("expected panic with %v, got %v", want, r)
		}
	}()
	f()
}

// sample builds
//
//	+
//	├── 1
//	└── *
//	    ├── 2
//	    └── 3
func sample() *Tree[string] {
	tree := WithRoot("+")
	root := tree.Entrance()
	must(tree.AppendChild(root, "1"))
	mul := must(tree.AppendChild(root, "*"))
	must(tree.AppendChild(mul, "2"))
	must(tree.AppendChild(mul, "3"))
	return tree
}

func checked(t *testing.T, tree *Tree[string]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invariants violated: %v", err)
	}
}

func TestEmptyTreeCreatesRoot(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := New[string]()
	if !tree.IsEmpty() || tree.Entrance().Valid() {
		t.Fatalf("expected new tree to be empty with an invalid entrance")
	}
	if _, err := tree.AppendChild(tree.Entrance(), "x"); !errors.Is(err, ErrNoNode) {
		t.Errorf("expected ErrNoNode for append to empty tree, got %v", err)
	}
	if !tree.IsEmpty() {
		t.Fatalf("failed append created a node")
	}
	r, err := tree.Insert(tree.Entrance(), "root")
	if err != nil {
		t.Fatalf("insert at entrance of empty tree failed: %v", err)
	}
	if r.Value() != "root" || tree.Root() != "root" {
		t.Errorf("expected root value 'root', have %q", tree.Root())
	}
	if n := NodeCount(tree.Entrance()); n != 1 {
		t.Errorf("expected node count 1, have %d", n)
	}
	if d := Depth(tree.Entrance()); d != 1 {
		t.Errorf("expected depth 1, have %d", d)
	}
	checked(t, tree)
}

func TestInsertAtEntranceOfClearedTree(t *testing.T) {
	tree := sample()
	tree.Clear()
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Fatalf("expected cleared tree to be empty")
	}
	if _, err := tree.Insert(tree.Entrance(), "r"); err != nil {
		t.Fatalf("expected root creation on cleared tree, got %v", err)
	}
	if tree.Root() != "r" {
		t.Errorf("expected root 'r', have %q", tree.Root())
	}
	checked(t, tree)
}

func TestInsertBeforeRootFails(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := sample()
	before := tree.Clone()
	_, err := tree.Insert(tree.Entrance(), "x")
	if !errors.Is(err, ErrInsertBeforeRoot) {
		t.Fatalf("expected ErrInsertBeforeRoot, got %v", err)
	}
	if err.Error() != "attempted to insert an element before the root of a tree" {
		t.Errorf("unexpected error message %q", err.Error())
	}
	if !Equal(tree, before) {
		t.Errorf("failed insertion modified the tree")
	}
	if _, err = tree.InsertTree(tree.Entrance(), WithRoot("y")); !errors.Is(err, ErrInsertBeforeRoot) {
		t.Errorf("expected ErrInsertBeforeRoot for subtree insertion, got %v", err)
	}
	src := WithRoot("z")
	if _, err = tree.InsertMove(tree.Entrance(), src); !errors.Is(err, ErrInsertBeforeRoot) {
		t.Errorf("expected ErrInsertBeforeRoot for move insertion, got %v", err)
	}
	if src.IsEmpty() {
		t.Errorf("failed move insertion emptied the source")
	}
	if !Equal(tree, before) {
		t.Errorf("failed insertion modified the tree")
	}
}

func TestInsertBeforeEndFails(t *testing.T) {
	tree := sample()
	before := tree.Clone()
	end := tree.Entrance().End()
	_, err := tree.Insert(end, "x")
	if !errors.Is(err, ErrInsertBeforeEnd) {
		t.Fatalf("expected ErrInsertBeforeEnd, got %v", err)
	}
	if err.Error() != "attempted to insert an element before a past-the-end traverser of a non-empty tree; use AppendChild" {
		t.Errorf("unexpected error message %q", err.Error())
	}
	if _, err = tree.Insert(Traverser[string]{}, "x"); !errors.Is(err, ErrInsertBeforeEnd) {
		t.Errorf("expected ErrInsertBeforeEnd for null traverser, got %v", err)
	}
	if !Equal(tree, before) {
		t.Errorf("failed insertion modified the tree")
	}
	checked(t, tree)
}

func TestInsertBeforeSibling(t *testing.T) {
	tree := sample()
	root := tree.Entrance()
	mul := root.Child(1)
	n, err := tree.Insert(mul, "0")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n.Value() != "0" {
		t.Errorf("expected new node to hold '0', has %q", n.Value())
	}
	want := []string{"1", "0", "*"}
	if root.ChildCount() != len(want) {
		t.Fatalf("expected %d children, have %d", len(want), root.ChildCount())
	}
	for i, w := range want {
		if v := root.Child(i).Value(); v != w {
			t.Errorf("child %d: expected %q, have %q", i, w, v)
		}
	}
	if !n.Parent().Equal(root) {
		t.Errorf("expected new node's parent to be the root")
	}
	expectPanic(t, ErrStaleTraverser, func() { _ = mul.Value() })
	checked(t, tree)
}

func TestCountIdentity(t *testing.T) {
	tree := sample()
	nodes := NodeCount(tree.Entrance())
	leaves := LeafCount(tree.Entrance())
	inner := 0
	for c := range PreOrder(tree.CEntrance()) {
		if c.ChildCount() > 0 {
			inner++
		}
	}
	if nodes != 5 || leaves != 3 || inner != 2 {
		t.Errorf("expected 5 nodes, 3 leaves, 2 inner nodes; have %d, %d, %d", nodes, leaves, inner)
	}
	if nodes != leaves+inner {
		t.Errorf("node count %d != leaves %d + inner nodes %d", nodes, leaves, inner)
	}
	if d := Depth(tree.Entrance()); d != 3 {
		t.Errorf("expected depth 3, have %d", d)
	}
	if tree.Len() != nodes {
		t.Errorf("expected Len() = %d, have %d", nodes, tree.Len())
	}
}

func TestPlusOneTwoCounts(t *testing.T) {
	tree := WithRoot("+")
	must(tree.AppendChild(tree.Entrance(), "1"))
	must(tree.AppendChild(tree.Entrance(), "2"))
	if n := NodeCount(tree.CEntrance()); n != 3 {
		t.Errorf("expected node count 3, have %d", n)
	}
	if n := LeafCount(tree.CEntrance()); n != 2 {
		t.Errorf("expected leaf count 2, have %d", n)
	}
	if d := Depth(tree.CEntrance()); d != 2 {
		t.Errorf("expected depth 2, have %d", d)
	}
}

func TestCloneIsolation(t *testing.T) {
	a := sample()
	b := a.Clone()
	if !Equal(a, b) {
		t.Fatalf("expected clone to equal original")
	}
	must(b.AppendChild(b.Entrance(), "z"))
	b.Entrance().Child(0).Set("one")
	if n := NodeCount(a.Entrance()); n != 5 {
		t.Errorf("inserting into clone changed original's node count to %d", n)
	}
	if v := a.Entrance().Child(0).Value(); v != "1" {
		t.Errorf("setting a value of the clone changed the original to %q", v)
	}
	if Equal(a, b) {
		t.Errorf("expected modified clone to differ from original")
	}
	checked(t, a)
	checked(t, b)
}

type payload struct {
	tags []string
}

func (p payload) Clone() payload {
	return payload{tags: append([]string(nil), p.tags...)}
}

func TestCloneUsesValueCloner(t *testing.T) {
	a := WithRoot(payload{tags: []string{"a", "b"}})
	b := a.Clone()
	b.Entrance().Update(func(p *payload) { p.tags[0] = "x" })
	if a.Root().tags[0] != "a" {
		t.Errorf("expected values to be deep-copied, original changed to %v", a.Root().tags)
	}
}

func TestEqualityLaws(t *testing.T) {
	deeper := sample()
	must(deeper.AppendChild(deeper.Entrance().Child(0), "4"))
	renamed := sample()
	renamed.Entrance().Child(1).Child(0).Set("9")
	tests := []struct {
		name  string
		a, b  *Tree[string]
		equal bool
	}{
		{"both empty", New[string](), New[string](), true},
		{"empty vs non-empty", New[string](), sample(), false},
		{"same shape and values", sample(), sample(), true},
		{"different value", sample(), renamed, false},
		{"different shape", sample(), deeper, false},
		{"single nodes", WithRoot("a"), WithRoot("a"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.equal {
				t.Errorf("Equal(a, b) = %v, want %v", got, tt.equal)
			}
			if got := Equal(tt.b, tt.a); got != tt.equal {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.equal)
			}
			if !Equal(tt.a, tt.a) || !Equal(tt.b, tt.b) {
				t.Errorf("Equal is not reflexive")
			}
		})
	}
	a, b, c := sample(), sample(), sample()
	if Equal(a, b) && Equal(b, c) && !Equal(a, c) {
		t.Errorf("Equal is not transitive")
	}
}

func TestEqualFunc(t *testing.T) {
	a := WithRoot("ABC")
	b := WithRoot("abc")
	fold := func(x, y string) bool { return len(x) == len(y) }
	if !EqualFunc(a, b, fold) {
		t.Errorf("expected trees to be equal under custom comparison")
	}
	if Equal(a, b) {
		t.Errorf("expected trees to differ under ==")
	}
}

func TestMoveInsert(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := sample()
	s := WithRoot("x")
	stale := s.Entrance()
	before, moved := NodeCount(tree.Entrance()), NodeCount(s.Entrance())
	y := tree.Entrance().Child(1)
	k := y.ChildCount()
	n, err := tree.AppendMove(y, s)
	if err != nil {
		t.Fatalf("move insertion failed: %v", err)
	}
	if !s.IsEmpty() {
		t.Errorf("expected source to be empty after move")
	}
	if y.ChildCount() != k+1 || y.Child(k).Value() != "x" || n.Value() != "x" {
		t.Errorf("expected new last child 'x' under %q", y.Value())
	}
	if c := NodeCount(tree.Entrance()); c != before+moved {
		t.Errorf("expected node count %d, have %d", before+moved, c)
	}
	expectPanic(t, ErrStaleTraverser, func() { _ = stale.Valid() })
	checked(t, tree)
}

func TestInsertMoveSubtree(t *testing.T) {
	tree := sample()
	src := sample()
	y := tree.Entrance().Child(1)
	n, err := tree.InsertMove(y, src)
	if err != nil {
		t.Fatalf("move insertion failed: %v", err)
	}
	if !src.IsEmpty() {
		t.Errorf("expected source to be empty after move")
	}
	if NodeCount(n) != 5 || NodeCount(tree.Entrance()) != 10 {
		t.Errorf("unexpected node counts %d / %d", NodeCount(n), NodeCount(tree.Entrance()))
	}
	if !EqualTree[string](n, sample().CEntrance()) {
		t.Errorf("moved subtree differs from source")
	}
	if _, err := tree.InsertMove(n, src); !errors.Is(err, ErrNoNode) {
		t.Errorf("expected ErrNoNode for moving an empty tree, got %v", err)
	}
	checked(t, tree)
}

func TestSubtreeRoundTrip(t *testing.T) {
	tree := sample()
	for i := range tree.Entrance().ChildCount() {
		sub := tree.Subtree(i)
		cp := FromCursor[string](tree.CEntrance().Child(i))
		if !Equal(sub, cp) {
			t.Errorf("Subtree(%d) differs from copy at child %d", i, i)
		}
		orig := tree.Entrance().Child(i).Value()
		sub.SetRoot("changed")
		must(sub.AppendChild(sub.Entrance(), "new"))
		if v := tree.Entrance().Child(i).Value(); v != orig {
			t.Errorf("mutating subtree copy changed the tree: %q", v)
		}
		checked(t, sub)
	}
	if NodeCount(tree.Entrance()) != 5 {
		t.Errorf("mutating subtree copies changed the tree")
	}
	if !FromCursor[string](Traverser[string]{}).IsEmpty() {
		t.Errorf("expected tree from null traverser to be empty")
	}
}

func TestSubtreeCopyIntoSameTree(t *testing.T) {
	tree := sample()
	n, err := tree.AppendSubtree(tree.Entrance(), tree.Entrance())
	if err != nil {
		t.Fatalf("self copy failed: %v", err)
	}
	if !EqualTree[string](n, sample().Entrance()) {
		t.Errorf("copied subtree differs from the original tree")
	}
	if c := NodeCount(tree.Entrance()); c != 10 {
		t.Errorf("expected 10 nodes after self copy, have %d", c)
	}
	mul := tree.Entrance().Child(1)
	if _, err = tree.InsertSubtree(mul.Child(0), mul); err != nil {
		t.Fatalf("subtree copy before own child failed: %v", err)
	}
	if c := NodeCount(tree.Entrance()); c != 13 {
		t.Errorf("expected 13 nodes, have %d", c)
	}
	checked(t, tree)
}

func TestBackReferencesAfterMutations(t *testing.T) {
	tree := WithRoot("r")
	root := tree.Entrance()
	for i := range 4 {
		c := must(tree.AppendChild(root, string(rune('a'+i))))
		for j := range i {
			must(tree.AppendChild(c, string(rune('0'+j))))
		}
		checked(t, tree)
	}
	// insert in front of every child of every child of the root
	for c := range root.Children() {
		k := c.ChildCount()
		for i := 0; i < k; i++ {
			at := c.Child(2 * i)
			must(tree.Insert(at, "-"))
		}
		checked(t, tree)
	}
	must(tree.AppendTree(root.Child(3).Child(0), sample()))
	checked(t, tree)
	if err := tree.Erase(root.Child(1)); err != nil {
		t.Fatalf("erase failed: %v", err)
	}
	checked(t, tree)
	must(tree.EmplaceBackChild(root, func(s *string) { *s = "e" }))
	checked(t, tree)
	must(tree.AppendSubtree(root.Child(0), root.Child(2)))
	checked(t, tree)
	for c, depth := range PreOrder(tree.Entrance()) {
		p := c.Parent()
		if depth == 0 {
			if p.Valid() {
				t.Errorf("root has a parent")
			}
			continue
		}
		found := false
		for s := range p.Children() {
			if s.Equal(c) {
				found = true
			}
		}
		if !found {
			t.Errorf("node %q not found among children of its parent %q", c.Value(), p.Value())
		}
	}
}

func TestEraseAndExtract(t *testing.T) {
	tree := sample()
	root := tree.Entrance()
	sub, err := tree.Extract(root.Child(1))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if sub.Root() != "*" || NodeCount(sub.Entrance()) != 3 {
		t.Errorf("unexpected extracted subtree, root %q", sub.Root())
	}
	if NodeCount(root) != 2 || root.ChildCount() != 1 {
		t.Errorf("expected 2 nodes after extract, have %d", NodeCount(root))
	}
	checked(t, tree)
	checked(t, sub)
	// freed slots are recycled
	must(tree.AppendTree(root, sub))
	if tree.Len() != 5 {
		t.Errorf("expected 5 nodes, have %d", tree.Len())
	}
	checked(t, tree)
	if err = tree.Erase(root); err != nil {
		t.Fatalf("erasing the root failed: %v", err)
	}
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Errorf("expected empty tree after erasing the root")
	}
	checked(t, tree)
	if err = tree.Erase(Traverser[string]{}); !errors.Is(err, ErrNoNode) {
		t.Errorf("expected ErrNoNode for null traverser, got %v", err)
	}
}

func TestForeignTraverser(t *testing.T) {
	a, b := sample(), sample()
	if _, err := a.AppendChild(b.Entrance(), "x"); !errors.Is(err, ErrForeignTraverser) {
		t.Errorf("expected ErrForeignTraverser for append, got %v", err)
	}
	if _, err := a.Insert(b.Entrance().Child(0), "x"); !errors.Is(err, ErrForeignTraverser) {
		t.Errorf("expected ErrForeignTraverser for insert, got %v", err)
	}
	if err := a.Erase(b.Entrance()); !errors.Is(err, ErrForeignTraverser) {
		t.Errorf("expected ErrForeignTraverser for erase, got %v", err)
	}
	if !Equal(a, b) {
		t.Errorf("failed operations modified a tree")
	}
}

func TestSwapAndTake(t *testing.T) {
	a, b := sample(), WithRoot("b")
	ra := a.Entrance()
	a.Swap(b)
	if a.Root() != "b" || b.Root() != "+" {
		t.Fatalf("swap did not exchange roots")
	}
	if ra.Value() != "+" {
		t.Errorf("expected traverser to follow its node")
	}
	if _, err := b.AppendChild(ra, "z"); err != nil {
		t.Errorf("expected traverser to belong to the swapped-to tree, got %v", err)
	}
	c := b.Take()
	if !b.IsEmpty() {
		t.Errorf("expected tree to be empty after Take")
	}
	if NodeCount(c.Entrance()) != 6 {
		t.Errorf("expected 6 nodes in taken tree, have %d", NodeCount(c.Entrance()))
	}
	checked(t, c)
}

type point struct {
	x, y int
}

func TestEmplace(t *testing.T) {
	tree := WithRoot(point{})
	root := tree.Entrance()
	last := must(tree.EmplaceBackChild(root, func(p *point) { p.x, p.y = 3, 4 }))
	first := must(tree.Emplace(last, func(p *point) { p.x = 1 }))
	if first.Value() != (point{1, 0}) {
		t.Errorf("unexpected emplaced value %v", first.Value())
	}
	must(tree.EmplaceBackChild(root, nil))
	expectPanic(t, ErrStaleTraverser, func() { _ = first.Value() })
	if v := root.Child(1).Value(); v != (point{3, 4}) {
		t.Errorf("unexpected emplaced value %v", v)
	}
	if v := root.Child(2).Value(); v != (point{}) {
		t.Errorf("expected zero value for nil initializer, have %v", v)
	}
}

func TestReserveChildren(t *testing.T) {
	tree := sample()
	root := tree.Entrance()
	c := root.Child(0)
	if err := tree.ReserveChildren(root, 1); err != nil {
		t.Fatal(err)
	}
	if c.Value() != "1" {
		t.Errorf("expected traverser to survive reservation without growth")
	}
	if err := tree.ReserveChildren(root, 64); err != nil {
		t.Fatal(err)
	}
	expectPanic(t, ErrStaleTraverser, func() { _ = c.Value() })
	if !root.Valid() || root.ChildCount() != 2 {
		t.Errorf("reservation changed the tree")
	}
	if err := tree.ReserveChildren(root.End(), 4); !errors.Is(err, ErrNoNode) {
		t.Errorf("expected ErrNoNode for past-the-end traverser, got %v", err)
	}
	// reserved capacity does not keep siblings valid across insertions
	first := root.Child(0)
	must(tree.AppendChild(root, "4"))
	expectPanic(t, ErrStaleTraverser, func() { _ = first.Value() })
	if n := root.ChildCount(); n != 3 {
		t.Errorf("expected 3 children after append, have %d", n)
	}
	checked(t, tree)
}

func TestRootOfEmptyTreePanics(t *testing.T) {
	tree := New[int]()
	expectPanic(t, nil, func() { _ = tree.Root() })
	expectPanic(t, nil, func() { _ = tree.Subtree(0) })
	expectPanic(t, nil, func() { _ = sample().Subtree(7) })
}

func TestMoveIntoItselfPanics(t *testing.T) {
	tree := sample()
	expectPanic(t, nil, func() { _, _ = tree.AppendMove(tree.Entrance(), tree) })
}
