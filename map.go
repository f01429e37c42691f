package bonjson

import (
	"github.com/kstenerud/go-bonjson/internal/errkind"
	"github.com/kstenerud/go-bonjson/internal/posmap"
)

// Map is the decoded position-map (C6/C7): a dense, preorder entry table
// over a BONJSON document, supporting O(1) random access without
// materializing a Go value tree. Obtain one with Decode.
type Map struct {
	m *posmap.Map
}

// Decode scans data into a Map under the given policies and limits. It does
// not materialize a Value tree; call Value to do that, or use the indexed
// accessors (TypeAt, IntAt, StringAt, ChildAt, FindKey, ...) to read only
// the parts of the document you need. Logging and hooks are disabled; use
// DecodeWithOptions to supply a Logger/Hooks.
func Decode(data []byte, policies Policies, limits Limits) (*Map, error) {
	return DecodeWithOptions(data, policies, limits, nil, nil)
}

// DecodeWithOptions is Decode with an optional Logger and Hooks. A nil
// logger or hooks argument disables that observer.
func DecodeWithOptions(data []byte, policies Policies, limits Limits, logger Logger, hooks Hooks) (*Map, error) {
	pm, err := posmap.ScanWithOptions(data, policies, limits, logger, hooks)
	if err != nil {
		return nil, err
	}
	return &Map{m: pm}, nil
}

// Root returns the index of the document's root entry.
func (m *Map) Root() int { return m.m.Root() }

// Len returns the total number of entries in the position map.
func (m *Map) Len() int { return m.m.Len() }

// Warnings returns the combined non-fatal diagnostics accumulated while
// decoding under a lenient policy, or nil if there were none.
func (m *Map) Warnings() error { return m.m.Warnings() }

// Serialize encodes the position map into a cache-entry blob (internal
// framing, unrelated to the BONJSON wire format) suitable for storage in a
// scancache.Provider. Use DecodeSerialized to reconstruct it without
// re-scanning the original document bytes.
func (m *Map) Serialize() []byte { return m.m.Serialize() }

// DecodeSerialized reconstructs a Map from the output of Serialize.
func DecodeSerialized(b []byte) (*Map, error) {
	pm, err := posmap.Deserialize(b)
	if err != nil {
		return nil, err
	}
	return &Map{m: pm}, nil
}

func kindOf(t posmap.Tag) Kind {
	switch t {
	case posmap.TagNull:
		return KindNull
	case posmap.TagFalse, posmap.TagTrue:
		return KindBool
	case posmap.TagInt:
		return KindInt64
	case posmap.TagUint:
		return KindUint64
	case posmap.TagFloat:
		return KindFloat64
	case posmap.TagBigNum:
		return KindBigNum
	case posmap.TagString:
		return KindString
	case posmap.TagArray:
		return KindArray
	case posmap.TagObject:
		return KindObject
	}
	return KindNull
}

// TypeAt returns the Kind of the entry at idx.
func (m *Map) TypeAt(idx int) Kind { return kindOf(m.m.TypeAt(idx)) }

// IsInert reports whether the entry at idx lost a duplicate-object-key
// resolution and should be skipped by any iteration meaning to see only
// live pairs.
func (m *Map) IsInert(idx int) bool { return m.m.IsInert(idx) }

func (m *Map) BoolAt(idx int) bool     { return m.m.BoolAt(idx) }
func (m *Map) IntAt(idx int) int64     { return m.m.IntAt(idx) }
func (m *Map) UintAt(idx int) uint64   { return m.m.UintAt(idx) }
func (m *Map) FloatAt(idx int) float64 { return m.m.FloatAt(idx) }
func (m *Map) StringAt(idx int) string { return string(m.m.StringAt(idx)) }

// BigNumAt decodes the arbitrary-precision decimal at idx.
func (m *Map) BigNumAt(idx int) (BigNum, error) { return m.m.BigNumAt(idx) }

// ChildCountOf returns the element count (array) or pair count (object) of
// the container at idx.
func (m *Map) ChildCountOf(idx int) int { return m.m.ChildCountOf(idx) }

// NextSibling returns the index immediately following idx's subtree.
func (m *Map) NextSibling(idx int) int { return m.m.NextSibling(idx) }

// ChildAt returns the index of the n-th element of the array at idx.
func (m *Map) ChildAt(idx, n int) int { return m.m.ChildAt(idx, n) }

// Pair returns the key and value entry indices of the n-th pair of the
// object at idx, in wire order.
func (m *Map) Pair(idx, n int) (keyIdx, valueIdx int) { return m.m.Pair(idx, n) }

// FindKey looks up key in the object at idx, returning its winning value
// entry index and true, or (0, false) if absent.
func (m *Map) FindKey(idx int, key string) (int, bool) { return m.m.FindKey(idx, key) }

// Value fully materializes the subtree rooted at idx into a Value tree.
// Inert entries (losing duplicate keys under KeepFirst/KeepLast) are
// omitted from object results.
func (m *Map) Value(idx int) (Value, error) {
	switch t := m.m.TypeAt(idx); t {
	case posmap.TagNull:
		return Null(), nil
	case posmap.TagFalse, posmap.TagTrue:
		return Bool(m.m.BoolAt(idx)), nil
	case posmap.TagInt:
		return Int(m.m.IntAt(idx)), nil
	case posmap.TagUint:
		return Uint(m.m.UintAt(idx)), nil
	case posmap.TagFloat:
		return Float(m.m.FloatAt(idx)), nil
	case posmap.TagBigNum:
		bn, err := m.m.BigNumAt(idx)
		if err != nil {
			return Value{}, err
		}
		return Big(bn), nil
	case posmap.TagString:
		return String(string(m.m.StringAt(idx))), nil
	case posmap.TagArray:
		n := m.m.ChildCountOf(idx)
		elems := make([]Value, 0, n)
		cur := m.m.FirstChild(idx)
		for i := 0; i < n; i++ {
			v, err := m.Value(cur)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
			cur = m.m.NextSibling(cur)
		}
		return Array(elems...), nil
	case posmap.TagObject:
		n := m.m.ChildCountOf(idx)
		pairs := make([]Pair, 0, n)
		cur := m.m.FirstChild(idx)
		for i := 0; i < n; i++ {
			keyIdx := cur
			valIdx := m.m.NextSibling(keyIdx)
			cur = m.m.NextSibling(valIdx)
			if m.m.IsInert(valIdx) {
				continue
			}
			v, err := m.Value(valIdx)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: string(m.m.StringAt(keyIdx)), Value: v})
		}
		return Object(pairs...), nil
	default:
		return Value{}, errkind.NewAtPath(errkind.InvalidType, "", "unrecognized entry tag")
	}
}
