// Package cachekey builds the composable identity values used to address
// cached evaluation results. A key deterministically captures everything
// that affects a result: an operation name, its rounded scalar parameters,
// optionally the canonical identity of the upstream node the operation was
// applied to, and optionally an index into a variable-length result set.
// All composite keys erase into a single opaque type so one cache store can
// hold heterogeneous keys.
package cachekey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/chazu/burl/pkg/geom"
)

// Separator delimits the segments of a composite key.
const Separator = "::"

// Key is an immutable, composable cache identity. The zero Key is invalid;
// build keys with Operation or ForNode and extend them with WithNode and
// Indexed.
type Key struct {
	canon string
}

// Operation builds a key from a logical operation name and its scalar
// parameters. Parameters are serialized deterministically; floats are
// rounded to the canonical geometry precision first so float noise does
// not defeat cache hits. Supported parameter types are booleans, integers,
// floats, strings, geom vectors, and fmt.Stringer values; anything else is
// a programming error.
func Operation(name string, params ...any) Key {
	if name == "" {
		panic("cachekey: operation name must not be empty")
	}
	var b strings.Builder
	b.WriteString("op:")
	b.WriteString(name)
	if len(params) > 0 {
		b.WriteByte('(')
		for i, p := range params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(serializeParam(p))
		}
		b.WriteByte(')')
	}
	return Key{canon: b.String()}
}

// ForNode builds the identity key of a node itself: the key under which the
// node's own evaluation result is cached.
func ForNode(n *geom.Node) Key {
	return Key{canon: "node{" + n.CanonicalString() + "}"}
}

// WithNode derives a key that also captures the upstream node an operation
// was applied to. Identical operations applied to structurally identical
// trees collide (hit the cache); applied to different trees they never do.
func (k Key) WithNode(n *geom.Node) Key {
	return Key{canon: k.canon + Separator + "node{" + n.CanonicalString() + "}"}
}

// Indexed derives the key of element i in a variable-length result set.
// The set's length is discovered by probing: a miss at index 0 means
// nothing was computed, and a hit at i with a miss at i+1 means the set
// has exactly i+1 elements.
func (k Key) Indexed(i int) Key {
	return Key{canon: k.canon + Separator + "[" + strconv.Itoa(i) + "]"}
}

// Opaque type-erases the key for heterogeneous storage. The erased form
// preserves the full canonical identity, so distinct keys never collide.
func (k Key) Opaque() geom.OpaqueKey {
	return geom.OpaqueKey(k.canon)
}

// Digest returns a 64-bit hash of the key, suitable for compact logging.
func (k Key) Digest() uint64 {
	return xxhash.Sum64String(k.canon)
}

// String returns the canonical form of the key.
func (k Key) String() string { return k.canon }

// IsZero reports whether the key was never initialized.
func (k Key) IsZero() bool { return k.canon == "" }

// MarshalJSON encodes the key as its canonical string.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.canon)
}

// UnmarshalJSON decodes a key from its canonical string.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("cachekey: empty key")
	}
	k.canon = s
	return nil
}

func serializeParam(p any) string {
	switch v := p.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(geom.Round(float64(v)), 'g', -1, 64)
	case float64:
		return strconv.FormatFloat(geom.Round(v), 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case geom.Vec2:
		return "(" + serializeParam(v.X) + "," + serializeParam(v.Y) + ")"
	case geom.Vec3:
		return "(" + serializeParam(v.X) + "," + serializeParam(v.Y) + "," + serializeParam(v.Z) + ")"
	case fmt.Stringer:
		return v.String()
	default:
		// Key injectivity depends on deterministic serialization; an
		// unsupported type here is a programming error.
		panic(fmt.Sprintf("cachekey: unsupported parameter type %T", p))
	}
}
