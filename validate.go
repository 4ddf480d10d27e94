package bvh

import "fmt"

// validate recursively checks invariants 1-4 of the tree's data model when
// t.cfg.Validate is enabled. Any violation is a bug in the tree core, not a
// recoverable condition, so it panics rather than returning an error —
// mirroring the reference implementation's VALIDATE-gated asserts.
func (t *Tree) validate() {
	if !t.cfg.Validate || t.Empty() {
		return
	}
	root := t.arena.get(t.root)
	if root.parent != Invalid {
		panic("bvh: invariant violated: root has a parent")
	}
	t.validateNode(t.root)
	if reachable := t.Stats().NodeCount; reachable != t.arena.liveCount {
		panic(fmt.Sprintf("bvh: invariant violated: %d nodes reachable from the root but %d live", reachable, t.arena.liveCount))
	}
}

func (t *Tree) validateNode(h Handle) {
	n := t.arena.get(h)

	if n.isLeaf() {
		if n.child[0] != Invalid || n.child[1] != Invalid {
			panic(fmt.Sprintf("bvh: invariant violated: leaf %d has a child set", h))
		}
		return
	}

	c0, c1 := n.child[0], n.child[1]
	if c0 == Invalid || c1 == Invalid || c0 == c1 {
		panic(fmt.Sprintf("bvh: invariant violated: interior node %d has invalid or duplicate children", h))
	}
	child0, child1 := t.arena.get(c0), t.arena.get(c1)
	if child0.parent != h || child1.parent != h {
		panic(fmt.Sprintf("bvh: invariant violated: children of %d do not point back to it", h))
	}
	if !n.aabb.Contains(child0.aabb) || !n.aabb.Contains(child1.aabb) {
		panic(fmt.Sprintf("bvh: invariant violated: node %d does not contain both children", h))
	}
	t.validateNode(c0)
	t.validateNode(c1)
}
