package arbor

import "fmt"

// Check validates structural tree invariants:
// every child's parent back-reference names the node holding it, every
// recorded slot matches the child's index, the node graph is free of cycles
// and shared children, and the node accounting of the arena is consistent.
//
// Check is meant for tests. All violations are reported as ErrCorruptTree.
func (t *Tree[T]) Check() error {
	if t.store.IsNil() {
		return nil
	}
	a := t.store.Get()
	live := 0
	for i := range a.nodes {
		if a.nodes[i].live {
			live++
		}
	}
	if live != a.size {
		return fmt.Errorf("%w: %d live nodes, but size is %d", ErrCorruptTree, live, a.size)
	}
	for _, f := range a.free {
		if f < 0 || f >= len(a.nodes) || a.nodes[f].live {
			return fmt.Errorf("%w: free list holds live or unknown slot %d", ErrCorruptTree, f)
		}
	}
	if live+len(a.free) != len(a.nodes) {
		return fmt.Errorf("%w: %d slots leaked", ErrCorruptTree, len(a.nodes)-live-len(a.free))
	}
	if a.root == none {
		if a.size != 0 {
			return fmt.Errorf("%w: empty tree owns %d nodes", ErrCorruptTree, a.size)
		}
		return nil
	}
	if r := a.nodes[a.root]; !r.live || r.parent != none {
		return fmt.Errorf("%w: root node is dead or has a parent", ErrCorruptTree)
	}
	seen := make([]bool, len(a.nodes))
	n, err := a.checkNode(a.root, seen)
	if err != nil {
		return err
	}
	if n != a.size {
		return fmt.Errorf("%w: %d nodes reachable from root, but size is %d",
			ErrCorruptTree, n, a.size)
	}
	return nil
}

func (a *arena[T]) checkNode(idx int, seen []bool) (int, error) {
	if seen[idx] {
		return 0, fmt.Errorf("%w: node %d reachable twice", ErrCorruptTree, idx)
	}
	seen[idx] = true
	count := 1
	for i, c := range a.nodes[idx].children {
		if c < 0 || c >= len(a.nodes) || !a.nodes[c].live {
			return 0, fmt.Errorf("%w: child %d of node %d is not a live node", ErrCorruptTree, i, idx)
		}
		child := &a.nodes[c]
		if child.parent != idx {
			return 0, fmt.Errorf("%w: node %d names parent %d instead of %d",
				ErrCorruptTree, c, child.parent, idx)
		}
		if child.slot != i {
			return 0, fmt.Errorf("%w: node %d records slot %d instead of %d",
				ErrCorruptTree, c, child.slot, i)
		}
		n, err := a.checkNode(c, seen)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}
