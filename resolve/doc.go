// Package resolve computes, for a data set, the set of reachable
// entity-link paths and the attributes visible at each path, together
// with deterministic display names and table aliases for them.
//
// Resolution is a pure function of the immutable model: it performs no
// I/O, never blocks, and always terminates. The same data set resolves
// to the same ordered result within and across runs, so callers may
// memoize results keyed on data-set identity (see the martgen root
// package for an explicit cache).
//
// # Path Resolution
//
// Paths returns every entity-link chain that is visible from the root
// entity, in depth-first discovery order, after applying three pruning
// rules: an edge instance may occur at most once per path (cycle
// avoidance), explicitly excluded paths are dropped together with their
// whole subtree, and paths beyond the data set's maximum link depth are
// dropped unless explicitly included. Every returned path is
// accompanied by all of its proper prefixes.
//
// # Attribute Visibility
//
// Attributes returns, for the empty root path and every resolved path,
// the attributes that survive the data set's include/exclude overrides,
// the accessible-via-link flag, and the personal-data filter, each
// under its generated display name.
package resolve
