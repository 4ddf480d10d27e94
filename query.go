package bvh

// FindOverlaps appends to out the handles of every leaf whose fat AABB
// overlaps box, and returns the extended slice. out is never cleared by
// this call, so repeated queries can share one accumulator.
func (t *Tree) FindOverlaps(box AABB, out []Handle) []Handle {
	if t.Empty() {
		return out
	}
	return t.walkOverlap(box, out)
}

// FindOverlapsHandle is FindOverlaps against the fat AABB already stored on
// handle h. It includes h itself in the results if h's own fat AABB
// overlaps itself, which it trivially always does — callers that want a
// query excluding the handle itself should filter it out of out.
func (t *Tree) FindOverlapsHandle(h Handle, out []Handle) ([]Handle, error) {
	if !t.arena.inRange(h) {
		return out, ErrInvalidHandle
	}
	return t.FindOverlaps(t.arena.get(h).aabb, out), nil
}

// walkOverlap is the stackless (heap-allocation-free after the first grow)
// depth-first overlap traversal: an explicit stack seeded with the root,
// and on every interior hit the popped slot is reused for the first child
// while the second child is pushed, bounding stack growth to one push per
// hit.
func (t *Tree) walkOverlap(box AABB, out []Handle) []Handle {
	stack := make([]Handle, 1, 64)
	stack[0] = t.root

	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(h)
		if !n.aabb.Overlaps(box) {
			continue
		}
		if n.isLeaf() {
			out = append(out, h)
			continue
		}
		stack = append(stack, n.child[0], n.child[1])
	}
	return out
}

// Raycast appends to out the handles of every leaf whose fat AABB
// intersects the segment from (x0,y0) to (x1,y1), and returns the extended
// slice. Traversal shape mirrors FindOverlaps exactly, substituting the
// segment-AABB test for the box-overlap test.
func (t *Tree) Raycast(x0, y0, x1, y1 float64, out []Handle) []Handle {
	if t.Empty() {
		return out
	}

	stack := make([]Handle, 1, 64)
	stack[0] = t.root

	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(h)
		if !n.aabb.IntersectsSegment(x0, y0, x1, y1) {
			continue
		}
		if n.isLeaf() {
			out = append(out, h)
			continue
		}
		stack = append(stack, n.child[0], n.child[1])
	}
	return out
}
