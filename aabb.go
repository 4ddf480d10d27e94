package bvh

import "math"

// AABB is an axis-aligned bounding box in 2D. The zero value is a
// degenerate box at the origin; callers are expected to supply boxes with
// MinX <= MaxX and MinY <= MaxY, same as the boxes fed to the reference
// implementation this package is derived from.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// Area returns the box's area. Used as the surface-area-heuristic cost
// throughout the tree core; substituting perimeter is equally valid as long
// as it's used consistently, but this package sticks to area.
func (a AABB) Area() float64 {
	return (a.MaxX - a.MinX) * (a.MaxY - a.MinY)
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// Contains reports whether b is entirely inside a, closed on all sides.
func (a AABB) Contains(b AABB) bool {
	return a.MinX <= b.MinX && a.MinY <= b.MinY &&
		a.MaxX >= b.MaxX && a.MaxY >= b.MaxY
}

// Overlaps reports whether a and b intersect on both axes. Touching edges
// count as overlapping (non-strict).
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX &&
		a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// Grow returns a expanded by margin on all four sides. This is how fat
// AABBs are built from the client's slim box before it is stored on a leaf.
func (a AABB) Grow(margin float64) AABB {
	return AABB{
		MinX: a.MinX - margin,
		MinY: a.MinY - margin,
		MaxX: a.MaxX + margin,
		MaxY: a.MaxY + margin,
	}
}

// segmentEpsilon is the slack applied to the cross-product separating-axis
// term in IntersectsSegment, to avoid rejecting near-parallel segments due
// to floating point noise.
const segmentEpsilon = 1e-4

// IntersectsSegment reports whether the line segment from (x0,y0) to
// (x1,y1) intersects a. Implemented as a separating-axis test: the segment
// is expressed as a centre point and half-extent vector and compared
// against the box's own centre and half-extent.
func (a AABB) IntersectsSegment(x0, y0, x1, y1 float64) bool {
	segCX := (x0 + x1) * 0.5
	segCY := (y0 + y1) * 0.5
	segHX := x1 - segCX
	segHY := y1 - segCY

	boxCX := (a.MinX + a.MaxX) * 0.5
	boxCY := (a.MinY + a.MaxY) * 0.5
	boxHX := (a.MaxX - a.MinX) * 0.5
	boxHY := (a.MaxY - a.MinY) * 0.5

	dx := boxCX - segCX
	dy := boxCY - segCY

	absHX := math.Abs(segHX)
	absHY := math.Abs(segHY)

	// Axis 1: x
	if math.Abs(dx) > boxHX+absHX {
		return false
	}
	// Axis 2: y
	if math.Abs(dy) > boxHY+absHY {
		return false
	}
	// Axis 3: segment normal (cross product of segment direction with each
	// box axis), with a small epsilon to tolerate near-degenerate segments.
	if math.Abs(segHX*dy-segHY*dx) > boxHX*absHY+boxHY*absHX+segmentEpsilon {
		return false
	}
	return true
}
