package bvh

// defaultGrowth is the fat-AABB margin applied on all four sides of every
// leaf's slim box, matching the reference implementation's default.
const defaultGrowth = 16.0

// defaultHeapCapacity bounds the priority queue used by the sibling search
// during insertion. When the search exhausts it, insertion falls back to a
// greedy top-down descent rather than growing the queue.
const defaultHeapCapacity = 1024

// Config holds the construction-time parameters of a Tree.
type Config struct {
	// Capacity is the fixed number of leaf+interior node slots in the
	// arena. Required, must be positive.
	Capacity int

	// Growth is the fat-AABB margin (see AABB.Grow). Defaults to 16.0.
	Growth float64

	// HeapCapacity bounds the priority queue used during sibling search.
	// Defaults to 1024.
	HeapCapacity int

	// Validate enables the recursive invariant walk after every mutating
	// operation. Off by default; useful in tests and debug builds, costly
	// on large trees.
	Validate bool
}

// Option configures a Config. Applied in NewConfig, in order.
type Option func(*Config)

// WithGrowth overrides the fat-AABB margin.
func WithGrowth(growth float64) Option {
	return func(c *Config) {
		c.Growth = growth
	}
}

// WithHeapCapacity overrides the sibling-search priority queue capacity.
func WithHeapCapacity(n int) Option {
	return func(c *Config) {
		c.HeapCapacity = n
	}
}

// WithValidation turns on the post-mutation invariant walk.
func WithValidation(enabled bool) Option {
	return func(c *Config) {
		c.Validate = enabled
	}
}

// NewConfig builds a Config for the given capacity, applying opts in order.
func NewConfig(capacity int, opts ...Option) Config {
	c := Config{
		Capacity:     capacity,
		Growth:       defaultGrowth,
		HeapCapacity: defaultHeapCapacity,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
