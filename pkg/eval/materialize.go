package eval

import (
	"context"
	"fmt"

	"github.com/chazu/burl/pkg/cachekey"
	"github.com/chazu/burl/pkg/geom"
)

// Producer computes a result when it is not already cached.
type Producer func(context.Context) (*Result, error)

// ListProducer computes a variable-length set of disjoint results.
type ListProducer func(context.Context) ([]*Result, error)

// Materialize is the cache-or-compute idiom: when key is already cached it
// returns a lightweight reference immediately and the producer does not
// run at all; that laziness is part of the contract, not an optimization.
// Otherwise the producer runs (it may itself build and evaluate further
// geometry), its result is stored, and a reference node is returned.
// Concurrent calls for the same key run the producer at most once.
func Materialize(ctx context.Context, ec *Context, key cachekey.Key, produce Producer) (*geom.Node, error) {
	op := key.Opaque()
	if r, ok := ec.cached(op); ok {
		return geom.Materialized(op, r.Dim()), nil
	}

	v, err, _ := ec.flight.Do(string(op), func() (any, error) {
		if r, ok := ec.cached(op); ok {
			return r, nil
		}
		r, err := produce(ctx)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("eval: producer for %s returned no result", key)
		}
		ec.store(op, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return geom.Materialized(op, v.(*Result).Dim()), nil
}

// MaterializeList is the list-producing variant: each element of the
// producer's output is stored under an index-suffixed key and referenced
// individually, for operations that legitimately yield multiple disjoint
// output parts.
func MaterializeList(ctx context.Context, ec *Context, key cachekey.Key, produce ListProducer) ([]*geom.Node, error) {
	if nodes, ok := CachedList(ec, key); ok {
		return nodes, nil
	}

	v, err, _ := ec.flight.Do(string(key.Opaque()), func() (any, error) {
		if nodes, ok := CachedList(ec, key); ok {
			return nodes, nil
		}
		rs, err := produce(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]*geom.Node, len(rs))
		for i, r := range rs {
			if r == nil {
				return nil, fmt.Errorf("eval: list producer for %s returned a nil result at index %d", key, i)
			}
			op := key.Indexed(i).Opaque()
			ec.store(op, r)
			nodes[i] = geom.Materialized(op, r.Dim())
		}
		return nodes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*geom.Node), nil
}

// CachedList returns references to every element already stored under
// index-suffixed derivations of key. A miss at index 0 means none of the
// set has been computed; a hit at index i with a miss at i+1 means the set
// has exactly i+1 elements.
func CachedList(ec *Context, key cachekey.Key) ([]*geom.Node, bool) {
	var nodes []*geom.Node
	for i := 0; ; i++ {
		op := key.Indexed(i).Opaque()
		r, ok := ec.cached(op)
		if !ok {
			break
		}
		nodes = append(nodes, geom.Materialized(op, r.Dim()))
	}
	return nodes, len(nodes) > 0
}
