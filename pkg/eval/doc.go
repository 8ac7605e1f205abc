// Package eval evaluates geometry expression trees into concrete kernel
// results, computing each distinct subtree exactly once per context. The
// cache store serializes all check/insert sequences and collapses
// concurrent requests for the same key into a single computation; sibling
// subtrees are evaluated in parallel and joined before their parent
// operation runs.
package eval
