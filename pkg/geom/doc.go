// Package geom defines the immutable expression tree describing geometric
// operations, its construction-time canonicalization rules, and the
// structural identity (hashing, serialization, printing) that the caching
// layer is built on.
package geom
