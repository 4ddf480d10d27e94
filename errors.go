package bvh

import "errors"

// Sentinel errors returned by Tree operations. Compare with errors.Is.
var (
	// ErrCapacityExceeded is returned by Insert when the arena has no free
	// slot left.
	ErrCapacityExceeded = errors.New("bvh: capacity exceeded")

	// ErrInvalidHandle is returned by Get, UserData, Remove, Move and
	// FindOverlapsHandle when the handle is out of range or refers to a free
	// slot; UserData, Remove and Move additionally return it for a handle
	// that refers to an interior node rather than a leaf.
	ErrInvalidHandle = errors.New("bvh: invalid handle")

	// ErrEmptyTree is returned by Root when the tree has no nodes.
	ErrEmptyTree = errors.New("bvh: empty tree")
)
