package bvh

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Tree is a fixed-capacity, single-threaded dynamic bounding volume
// hierarchy over 2D AABBs. The zero value is not usable; construct one
// with New.
type Tree struct {
	cfg   Config
	arena arena
	heap  pqueue
	root  Handle
	log   *logrus.Logger
}

// New builds a Tree from cfg. cfg.Capacity must be positive.
func New(cfg Config) (*Tree, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("bvh: capacity must be positive, got %d", cfg.Capacity)
	}
	if cfg.Growth == 0 {
		cfg.Growth = defaultGrowth
	}
	if cfg.HeapCapacity == 0 {
		cfg.HeapCapacity = defaultHeapCapacity
	}
	return &Tree{
		cfg:   cfg,
		arena: newArena(cfg.Capacity),
		heap:  newPQueue(cfg.HeapCapacity),
		root:  Invalid,
		log:   logrus.StandardLogger(),
	}, nil
}

// Empty reports whether the tree currently holds no nodes.
func (t *Tree) Empty() bool {
	return t.root == Invalid
}

// NodeView is a read-only snapshot of a node returned by Get and Root.
type NodeView struct {
	Handle   Handle
	AABB     AABB
	Payload  interface{}
	Parent   Handle
	Children [2]Handle
	IsLeaf   bool
}

func (t *Tree) view(h Handle) NodeView {
	n := t.arena.get(h)
	return NodeView{
		Handle:   h,
		AABB:     n.aabb,
		Payload:  n.payload,
		Parent:   n.parent,
		Children: n.child,
		IsLeaf:   n.isLeaf(),
	}
}

// Root returns a view of the root node. It returns ErrEmptyTree if the tree
// is empty.
func (t *Tree) Root() (NodeView, error) {
	if t.Empty() {
		return NodeView{}, ErrEmptyTree
	}
	return t.view(t.root), nil
}

// Get returns a view of the node addressed by h.
func (t *Tree) Get(h Handle) (NodeView, error) {
	if !t.arena.inRange(h) {
		return NodeView{}, fmt.Errorf("bvh: handle %d: %w", h, ErrInvalidHandle)
	}
	return t.view(h), nil
}

// UserData returns the payload stored on the leaf addressed by h.
func (t *Tree) UserData(h Handle) (interface{}, error) {
	if !t.arena.inRange(h) || !t.arena.get(h).isLeaf() {
		return nil, fmt.Errorf("bvh: handle %d: %w", h, ErrInvalidHandle)
	}
	return t.arena.get(h).payload, nil
}

// Insert adds aabb to the tree, storing payload on its leaf, and returns a
// handle stable until the leaf is removed or the tree is cleared.
func (t *Tree) Insert(box AABB, payload interface{}) (Handle, error) {
	leaf, err := t.arena.allocate()
	if err != nil {
		return Invalid, err
	}
	n := t.arena.get(leaf)
	n.aabb = box.Grow(t.cfg.Growth)
	n.payload = payload
	n.parent = Invalid
	n.child = [2]Handle{Invalid, Invalid}

	if err := t.linkIn(leaf); err != nil {
		t.arena.free(leaf)
		return Invalid, err
	}
	t.validate()
	return leaf, nil
}

// linkIn inserts an already-allocated, fully-populated leaf into the tree,
// creating an internal parent and running the ancestor rotation pass. It
// can only fail with ErrCapacityExceeded, and only when the tree already
// has a root and no arena slot remains for the new interior node.
func (t *Tree) linkIn(leaf Handle) error {
	if t.root == Invalid {
		t.root = leaf
		return nil
	}
	if t.arena.get(t.root).isLeaf() {
		parent, err := t.newInternal(t.root, leaf)
		if err != nil {
			return err
		}
		t.root = parent
		return nil
	}

	sibling := t.chooseSibling(leaf)
	return t.spliceIn(sibling, leaf)
}

// newInternal allocates an interior node with children a and b, in that
// order, fixes up their parent pointers, and returns its handle.
func (t *Tree) newInternal(a, b Handle) (Handle, error) {
	p, err := t.arena.allocate()
	if err != nil {
		return Invalid, err
	}
	pn := t.arena.get(p)
	pn.child[0], pn.child[1] = a, b
	pn.parent = Invalid
	pn.aabb = t.arena.get(a).aabb.Union(t.arena.get(b).aabb)
	t.arena.get(a).parent = p
	t.arena.get(b).parent = p
	return p, nil
}

// spliceIn replaces sibling with a fresh interior node whose children are
// sibling and leaf, then walks from that new node up to the root, fixing
// AABBs and running the rotation optimizer at every ancestor.
func (t *Tree) spliceIn(sibling, leaf Handle) error {
	oldParent := t.arena.get(sibling).parent
	newParent, err := t.newInternal(sibling, leaf)
	if err != nil {
		return err
	}

	if oldParent == Invalid {
		t.root = newParent
	} else {
		op := t.arena.get(oldParent)
		if op.child[0] == sibling {
			op.child[0] = newParent
		} else {
			op.child[1] = newParent
		}
		t.arena.get(newParent).parent = oldParent
	}

	t.refreshAndOptimize(newParent)
	return nil
}

// refreshAndOptimize walks from start up to the root, recomputing each
// ancestor's AABB as the union of its children and running the rotation
// optimizer on the way, mirroring the ancestor walk performed after every
// insertion and re-insertion.
func (t *Tree) refreshAndOptimize(start Handle) {
	h := start
	for h != Invalid {
		n := t.arena.get(h)
		n.aabb = t.arena.get(n.child[0]).aabb.Union(t.arena.get(n.child[1]).aabb)
		t.optimizeNode(h)
		h = t.arena.get(h).parent
	}
}

// chooseSibling runs the branch-and-bound sibling search for a leaf whose
// fat AABB is fatBox, falling back to a greedy descent if the search's
// priority queue is exhausted.
func (t *Tree) chooseSibling(leaf Handle) Handle {
	fatBox := t.arena.get(leaf).aabb

	t.heap.reset()
	t.heap.push(pqueueEntry{node: t.root, cost: 0})

	bestCost := math.Inf(1)
	best := Invalid

	for t.heap.len() > 0 {
		e := t.heap.pop()
		if e.cost >= bestCost {
			continue
		}
		n := t.arena.get(e.node)
		if n.isLeaf() {
			bestCost = e.cost
			best = e.node
			continue
		}
		for _, c := range n.child {
			cn := t.arena.get(c)
			delta := cn.aabb.Union(fatBox).Area() - cn.aabb.Area()
			childCost := e.cost + delta
			if !t.heap.push(pqueueEntry{node: c, cost: childCost}) {
				return t.greedySibling(fatBox)
			}
		}
	}
	if best == Invalid {
		// Not reached with finite costs: bestCost starts at +Inf, so the
		// first leaf popped always becomes best.
		return t.greedySibling(fatBox)
	}
	return best
}

// greedySibling is the deterministic top-down fallback used when the
// sibling-search priority queue overflows: at each interior node it
// descends into whichever child yields the smaller combined SAH cost after
// a hypothetical insertion, exactly as the reference implementation's
// recursive _insert does unconditionally.
func (t *Tree) greedySibling(fatBox AABB) Handle {
	h := t.root
	for {
		n := t.arena.get(h)
		if n.isLeaf() {
			return h
		}
		c0, c1 := n.child[0], n.child[1]
		b0, b1 := t.arena.get(c0).aabb, t.arena.get(c1).aabb
		sah0 := b0.Union(fatBox).Area() + b1.Area()
		sah1 := b1.Union(fatBox).Area() + b0.Area()
		if sah0 <= sah1 {
			h = c0
		} else {
			h = c1
		}
	}
}

// Remove deletes the leaf addressed by h from the tree.
func (t *Tree) Remove(h Handle) error {
	if !t.arena.inRange(h) || !t.arena.get(h).isLeaf() {
		return fmt.Errorf("bvh: handle %d: %w", h, ErrInvalidHandle)
	}
	t.unlink(h)
	t.arena.free(h)
	t.validate()
	return nil
}

// unlink removes the leaf h from the tree structure without freeing its
// arena slot, implementing the three cases from the tree core spec: h is
// the root, h's parent is the root, or the general case.
func (t *Tree) unlink(h Handle) {
	parent := t.arena.get(h).parent

	if parent == Invalid {
		// Case A: h is the root.
		t.root = Invalid
		return
	}

	grandparent := t.arena.get(parent).parent
	sibling := t.sibling(parent, h)

	if grandparent == Invalid {
		// Case B: h's parent is the root; the sibling is promoted to root.
		t.root = sibling
		t.arena.get(sibling).parent = Invalid
		t.arena.free(parent)
		t.arena.get(h).parent = Invalid
		return
	}

	// Case C: general case.
	gp := t.arena.get(grandparent)
	if gp.child[0] == parent {
		gp.child[0] = sibling
	} else {
		gp.child[1] = sibling
	}
	t.arena.get(sibling).parent = grandparent
	t.arena.free(parent)
	t.arena.get(h).parent = Invalid

	t.refreshAncestors(grandparent)
}

// sibling returns the other child of parent besides child.
func (t *Tree) sibling(parent, child Handle) Handle {
	p := t.arena.get(parent)
	if p.child[0] == child {
		return p.child[1]
	}
	return p.child[0]
}

// refreshAncestors walks from start up to the root recomputing AABBs only,
// with no rotation pass — removal is not paired with an optimizer sweep.
func (t *Tree) refreshAncestors(start Handle) {
	h := start
	for h != Invalid {
		n := t.arena.get(h)
		n.aabb = t.arena.get(n.child[0]).aabb.Union(t.arena.get(n.child[1]).aabb)
		h = n.parent
	}
}

// Move updates the AABB of the leaf addressed by h. If the leaf's current
// fat AABB already contains newBox, this is a no-op (the hysteresis
// short-circuit); otherwise the leaf is unlinked and re-inserted with a
// freshly grown fat AABB, running the same sibling search and rotation
// pass as Insert. The handle is preserved either way.
func (t *Tree) Move(h Handle, newBox AABB) error {
	if !t.arena.inRange(h) || !t.arena.get(h).isLeaf() {
		return fmt.Errorf("bvh: handle %d: %w", h, ErrInvalidHandle)
	}
	n := t.arena.get(h)
	if n.aabb.Contains(newBox) {
		return nil
	}

	t.unlink(h)
	n.aabb = newBox.Grow(t.cfg.Growth)
	n.child = [2]Handle{Invalid, Invalid}
	if err := t.linkIn(h); err != nil {
		// Unreachable in practice: unlink always frees at least as much
		// arena headroom as re-insertion can need.
		return fmt.Errorf("bvh: re-insert during move: %w", err)
	}

	t.validate()
	return nil
}

// Clear empties the tree, rebuilding the free-list over the whole arena.
// It does not release the arena's backing storage.
func (t *Tree) Clear() {
	t.arena.reset()
	t.root = Invalid
}
