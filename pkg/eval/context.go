package eval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/chazu/burl/pkg/cachekey"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Context owns the materialization cache for one top-level build. It is
// safe for concurrent use; the cache is unbounded and discarded with the
// context.
type Context struct {
	kernel kernel.Kernel
	log    *slog.Logger

	mu       sync.RWMutex
	results  map[geom.OpaqueKey]*Result
	elements map[geom.OpaqueKey]any

	// flight collapses concurrent computations of the same key so the
	// producer runs at most once; late callers receive the first
	// caller's result.
	flight singleflight.Group
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext creates an evaluation context backed by the given kernel.
func NewContext(k kernel.Kernel, opts ...Option) *Context {
	c := &Context{
		kernel:   k,
		log:      slog.New(discardHandler{}),
		results:  make(map[geom.OpaqueKey]*Result),
		elements: make(map[geom.OpaqueKey]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kernel returns the primitive-geometry kernel backing this context.
func (c *Context) Kernel() kernel.Kernel { return c.kernel }

// HasCachedResult reports whether a result is already stored under key.
func (c *Context) HasCachedResult(key cachekey.Key) bool {
	_, ok := c.cached(key.Opaque())
	return ok
}

// StoreMaterializedResult inserts a computed result under key and returns
// a materialized node referencing it, so the caller can replace an
// expensive subtree with a cheap reference.
func (c *Context) StoreMaterializedResult(r *Result, key cachekey.Key) *geom.Node {
	op := key.Opaque()
	c.store(op, r)
	return geom.Materialized(op, r.Dim())
}

// ResultElements returns the element value stored under key, if any.
func (c *Context) ResultElements(key cachekey.Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.elements[key.Opaque()]
	return v, ok
}

// SetResultElements stores an element value under key.
func (c *Context) SetResultElements(key cachekey.Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements[key.Opaque()] = v
}

// Result evaluates a node, returning the cached result when its structural
// identity has been computed before. Concurrent calls for the same
// identity share one computation. Materialized nodes are resolved by
// lookup only; one referencing a missing entry is an internal invariant
// violation and panics.
func (c *Context) Result(ctx context.Context, n *geom.Node) (*Result, error) {
	if n == nil || n.IsEmpty() {
		return &Result{}, nil
	}
	if n.Kind() == geom.KindMaterialized {
		key := n.Data().(geom.MaterializedData).Key
		if r, ok := c.cached(key); ok {
			return r, nil
		}
		panic(fmt.Sprintf("eval: materialized node references missing cache entry %q", key))
	}

	op := cachekey.ForNode(n).Opaque()
	v, err, shared := c.flight.Do(string(op), func() (any, error) {
		if r, ok := c.cached(op); ok {
			c.log.Debug("cache hit", "kind", n.Kind().String(), "hash", n.Hash())
			return r, nil
		}
		r, err := c.evaluate(ctx, n)
		if err != nil {
			return nil, err
		}
		c.store(op, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("shared in-flight evaluation", "kind", n.Kind().String(), "hash", n.Hash())
	}
	return v.(*Result), nil
}

func (c *Context) cached(op geom.OpaqueKey) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[op]
	return r, ok
}

func (c *Context) store(op geom.OpaqueKey, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[op] = r
}

// discardHandler drops all records. Used when no logger is configured.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
