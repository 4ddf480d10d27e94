package bvh

import "math/rand"

// optimizeDescentBias is the probability of descending into child[0] during
// Optimize's random walk to the leaves. 0.5 is unbiased; the constant exists
// as a documented knob rather than a hardwired coin flip, mirroring the
// "biased coin" language used to describe the reference implementation's
// background optimizer pass.
const optimizeDescentBias = 0.5

// optimizeNode performs the local, area-reducing rotation pass on interior
// node nh with children c0, c1, trying both the (c0, c1) and (c1, c0)
// orientation so a rotation is attempted regardless of which child happens
// to be the interior one.
func (t *Tree) optimizeNode(nh Handle) {
	n := t.arena.get(nh)
	if n.isLeaf() {
		return
	}
	t.rotateOnce(nh, n.child[0], n.child[1])

	// Repeat with c0 and c1 swapped, re-reading n's current children since
	// the first pass may have altered them.
	n = t.arena.get(nh)
	t.rotateOnce(nh, n.child[1], n.child[0])
}

// rotateOnce attempts one rotation of n's children (c0, c1), requiring c0
// to be interior: if c0 is a leaf it swaps c0 and c1 once, and does nothing
// if both are leaves.
func (t *Tree) rotateOnce(nh, c0h, c1h Handle) {
	if t.arena.get(c0h).isLeaf() {
		c0h, c1h = c1h, c0h
		if t.arena.get(c0h).isLeaf() {
			return
		}
	}

	c0 := t.arena.get(c0h)
	c1 := t.arena.get(c1h)
	x0h, x1h := c0.child[0], c0.child[1]
	x0 := t.arena.get(x0h)
	x1 := t.arena.get(x1h)

	h0 := c0.aabb.Area()
	h1 := c1.aabb.Union(x1.aabb).Area() // c0 becomes {c1, x1}: swap x0 <-> c1
	h2 := x0.aabb.Union(c1.aabb).Area() // c0 becomes {x0, c1}: swap x1 <-> c1

	switch {
	case h1 <= h2 && h1 < h0:
		c0.child[0], c0.child[1] = c1h, x1h
		c0.aabb = c1.aabb.Union(x1.aabb)
		c1.parent = c0h
		t.replaceChild(nh, c1h, x0h)
		x0.parent = nh
	case h2 < h0:
		c0.child[0], c0.child[1] = x0h, c1h
		c0.aabb = x0.aabb.Union(c1.aabb)
		c1.parent = c0h
		t.replaceChild(nh, c1h, x1h)
		x1.parent = nh
	}
}

// replaceChild rewrites parent's child slot holding oldChild to hold
// newChild instead.
func (t *Tree) replaceChild(parent, oldChild, newChild Handle) {
	p := t.arena.get(parent)
	if p.child[0] == oldChild {
		p.child[0] = newChild
	} else {
		p.child[1] = newChild
	}
}

// Optimize runs a best-effort background restructuring pass: one random
// descent from the root to a leaf, then optimizeNode applied bottom-up on
// the way back to the root. It is not guaranteed to find the optimal tree,
// only to never increase Quality (modulo float slack).
func (t *Tree) Optimize() {
	if t.Empty() {
		return
	}
	before := t.Quality()

	path := []Handle{t.root}
	h := t.root
	for {
		n := t.arena.get(h)
		if n.isLeaf() {
			break
		}
		if rand.Float64() < optimizeDescentBias {
			h = n.child[0]
		} else {
			h = n.child[1]
		}
		path = append(path, h)
	}
	for i := len(path) - 1; i >= 0; i-- {
		t.optimizeNode(path[i])
	}

	after := t.Quality()
	t.log.WithFields(map[string]interface{}{
		"before": before,
		"after":  after,
	}).Debug("bvh: optimize pass complete")
}

// Quality returns the sum of AABB areas over every interior node other than
// the root. Lower is better; Optimize never increases it beyond a small
// float slack.
func (t *Tree) Quality() float64 {
	if t.Empty() {
		return 0
	}
	var sum float64
	var walk func(h Handle, isRoot bool)
	walk = func(h Handle, isRoot bool) {
		n := t.arena.get(h)
		if n.isLeaf() {
			return
		}
		if !isRoot {
			sum += n.aabb.Area()
		}
		walk(n.child[0], false)
		walk(n.child[1], false)
	}
	walk(t.root, true)
	return sum
}
