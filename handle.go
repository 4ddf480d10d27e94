package bvh

// Handle is an opaque, stable identifier for a leaf in a Tree. It stays
// valid from the Insert call that produced it until the matching Remove or
// a Clear of the whole tree.
type Handle int32

// Invalid is the documented sentinel for an absent handle or link. No live
// node ever has this value.
const Invalid Handle = -1
