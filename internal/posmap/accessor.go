package posmap

import (
	"fmt"
	"math/big"

	"github.com/kstenerud/go-bonjson/internal/errkind"
	"github.com/kstenerud/go-bonjson/internal/wire"
)

// TypeAt returns the tag of the entry at idx.
func (m *Map) TypeAt(idx int) Tag { return m.entries[idx].Tag }

// IsInert reports whether the entry at idx lost a duplicate-object-key
// resolution under DuplicateKeepFirst/DuplicateKeepLast (spec.md §4.8): its
// bytes are still present in the map but it should be skipped by any
// materialization or iteration that means to see only live pairs.
func (m *Map) IsInert(idx int) bool { return m.entries[idx].inert }

// BoolAt returns the boolean value of the entry at idx, which must have tag
// TagTrue or TagFalse.
func (m *Map) BoolAt(idx int) bool { return m.entries[idx].Tag == TagTrue }

// IntAt returns the entry's value as int64. Valid for TagInt, and for TagUint
// values that fit; out-of-range TagUint values are truncated by conversion,
// so callers uncertain of sign should check TypeAt first.
func (m *Map) IntAt(idx int) int64 {
	e := &m.entries[idx]
	if e.Tag == TagUint {
		return int64(e.U64)
	}
	return e.I64
}

// UintAt returns the entry's value as uint64. See IntAt's caveat on mixed
// sign access.
func (m *Map) UintAt(idx int) uint64 {
	e := &m.entries[idx]
	if e.Tag == TagInt {
		return uint64(e.I64)
	}
	return e.U64
}

// FloatAt returns the entry's value as float64. Valid for TagFloat.
func (m *Map) FloatAt(idx int) float64 { return m.entries[idx].F64 }

// StringAt returns the UTF-8 bytes of the string entry at idx. The slice
// aliases the map's owned buffers and is valid for the map's lifetime; it
// must not be mutated. Already validated and (if applicable) transformed
// per the UTF-8/NUL policies in effect when the map was scanned.
func (m *Map) StringAt(idx int) []byte {
	return m.stringBytes(&m.entries[idx])
}

func (m *Map) stringBytes(e *Entry) []byte {
	if e.Chunked {
		return m.assembled[e.StrOff : e.StrOff+e.StrLen]
	}
	return m.input[e.StrOff : e.StrOff+e.StrLen]
}

// BigNumAt decodes the arbitrary-precision decimal at idx, which must have
// tag TagBigNum.
func (m *Map) BigNumAt(idx int) (wire.BigNum, error) {
	e := &m.entries[idx]
	raw := m.input[e.StrOff : e.StrOff+e.StrLen]
	bn, err := wire.DecodeBigNum(raw)
	if err != nil {
		return wire.BigNum{}, errkind.NewAtPath(errkind.InvalidData, fmt.Sprintf("entry[%d]", idx), "malformed big number")
	}
	return bn, nil
}

// BigNumFloatAt decodes the big number at idx and converts it to float64.
func (m *Map) BigNumFloatAt(idx int) (float64, error) {
	bn, err := m.BigNumAt(idx)
	if err != nil {
		return 0, err
	}
	return bn.Float64(), nil
}

// ChildCountOf returns the number of elements (array) or pairs (object) in
// the container at idx.
func (m *Map) ChildCountOf(idx int) int { return m.entries[idx].ChildCount }

// FirstChild returns the index of the first element (array) or first key
// (object) of the container at idx, for callers that want to walk NextSibling
// links themselves instead of repeatedly calling ChildAt/Pair (each of which
// walks from the start on every call).
func (m *Map) FirstChild(idx int) int { return m.entries[idx].FirstChild }

// NextSibling returns the index immediately following idx's subtree.
func (m *Map) NextSibling(idx int) int { return m.entries[idx].NextSibling }

// ChildAt returns the index of the n-th array element of the array at idx
// (0-based), walking sibling links. It panics if idx is not an array or n is
// out of range -- callers are expected to have checked TypeAt/ChildCountOf
// first, mirroring the accessor's "trusted caller, validated input" split
// from spec.md §4.7.
func (m *Map) ChildAt(idx, n int) int {
	e := &m.entries[idx]
	if e.Tag != TagArray {
		panic("posmap: ChildAt called on non-array entry")
	}
	if n < 0 || n >= e.ChildCount {
		panic("posmap: ChildAt index out of range")
	}
	cur := e.FirstChild
	for ; n > 0; n-- {
		cur = m.entries[cur].NextSibling
	}
	return cur
}

// Pair returns the key and value entry indices of the n-th pair of the
// object at idx (0-based, in wire order, including any inert losing pairs
// under keepFirst/keepLast -- callers that want only live pairs should
// check IsInert on the returned value index).
func (m *Map) Pair(idx, n int) (keyIdx, valueIdx int) {
	e := &m.entries[idx]
	if e.Tag != TagObject {
		panic("posmap: Pair called on non-object entry")
	}
	cur := e.FirstChild
	for ; n > 0; n-- {
		cur = m.entries[cur].NextSibling // skip this pair's key...
		cur = m.entries[cur].NextSibling // ...and its value
	}
	return cur, m.entries[cur].NextSibling
}

// FindKey looks up key in the object at idx and returns the winning value
// entry's index and true, or (0, false) if absent. The first lookup on a
// given object builds and caches a key->index map (grounded on cascache's
// local provider's lazy-init-under-sync.Once idiom); later lookups reuse it.
func (m *Map) FindKey(idx int, key string) (int, bool) {
	e := &m.entries[idx]
	if e.Tag != TagObject {
		panic("posmap: FindKey called on non-object entry")
	}
	cache := &m.keyCaches[idx]
	cache.once.Do(func() {
		index := make(map[string]int, e.ChildCount)
		cur := e.FirstChild
		for i := 0; i < e.ChildCount; i++ {
			keyEntry := &m.entries[cur]
			valIdx := keyEntry.NextSibling
			if !m.entries[valIdx].inert {
				index[string(m.stringBytes(keyEntry))] = valIdx
			}
			cur = m.entries[valIdx].NextSibling
		}
		cache.index = index
	})
	valIdx, ok := cache.index[key]
	return valIdx, ok
}

// DecodeBigNumFromBytes decodes a standalone big-number span (used by
// compat bridges that need to interpret a big.Int/exponent pair without an
// owning Map).
func DecodeBigNumFromBytes(raw []byte) (wire.BigNum, error) {
	return wire.DecodeBigNum(raw)
}

// NewBigNum constructs a wire.BigNum from its components, for encoders.
func NewBigNum(sig *big.Int, exponent int, negative bool) wire.BigNum {
	return wire.BigNum{Significand: sig, Exponent: exponent, Negative: negative}
}
