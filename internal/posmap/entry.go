// Package posmap implements the position-map scanner (C6) and accessor (C7):
// a single-pass, preorder scan of a BONJSON document into a dense entry
// table that supports O(1) random-access reads without copying value bytes.
//
// This is the component with no direct teacher analog -- cascache always
// knows its values up front (they arrive already decoded from a Provider).
// The bounds-checked, never-trust-the-input offset arithmetic is grounded on
// internal/wire.DecodeBulk's style (every slice operation preceded by a
// length check, corruption surfaced as a typed error, never a panic); the
// overall "build a flat array of fixed-size records in one pass" shape is
// grounded on the zero-copy decoder pattern in the pack's
// tenaciousjzh/customcodec zerocopycodec example, generalized from recursive
// descent to an explicit iterative work stack so stack depth is bounded by
// maxDepth rather than by the Go call stack.
package posmap

import "github.com/kstenerud/go-bonjson/internal/wire"

// Tag identifies the logical type of an Entry. It's a compact reclassification
// of wire.TypeCode: scalar kinds are collapsed to one tag each regardless of
// which fixed-width wire form produced them.
type Tag byte

const (
	TagNull Tag = iota
	TagFalse
	TagTrue
	TagInt
	TagUint
	TagFloat
	TagBigNum
	TagString
	TagArray
	TagObject
)

// Entry is a fixed-size position-map record. Exactly one of the payload
// interpretations below is valid, selected by Tag:
//
//   - TagInt/TagUint: I64/U64 holds the value inline.
//   - TagFloat: F64 holds the value inline.
//   - TagBigNum: StrOff/StrLen locate the raw type-code+header+significand+
//     exponent bytes in the owned input; callers needing the decoded value
//     call DecodeBigNum on that slice.
//   - TagString: StrOff/StrLen locate the string bytes in the owned input.
//     Chunked is true if the bytes live in the map's separate assembly
//     buffer instead (every long-form string, any string rewritten by the
//     UTF-8 policy, and strings synthesized under FloatAsString), in which
//     case StrOff/StrLen index into that buffer (see Map.assembled).
//   - TagArray/TagObject: FirstChild is the index of the first child entry
//     (absent, i.e. equal to the container's own index + 1, only when
//     ChildCount is 0); ChildCount is the element count for arrays or the
//     pair count for objects; NextSibling is the end of the last child's
//     subtree, which is also this entry's own subtree end.
type Entry struct {
	Tag Tag

	I64 int64
	U64 uint64
	F64 float64

	StrOff  int
	StrLen  int
	Chunked bool

	FirstChild int
	ChildCount int

	// NextSibling is the index immediately following this entry's subtree
	// (itself, for a scalar). Precomputed for every entry so sibling hops
	// and k-th-child walks are O(1)/O(k) without revisiting bytes.
	NextSibling int

	// duplicate-key bookkeeping for object value entries; see accessor.go.
	inert bool
}

// TypeOf maps a wire.TypeCode to its position-map Tag.
func TypeOf(code wire.TypeCode) Tag {
	switch {
	case code.IsSmallInt(), code.IsSignedInt():
		return TagInt
	case code.IsUnsignedInt():
		return TagUint
	case code.IsShortString():
		return TagString
	}
	switch code {
	case wire.LongString:
		return TagString
	case wire.BigNumber:
		return TagBigNum
	case wire.Float16, wire.Float32, wire.Float64:
		return TagFloat
	case wire.Null:
		return TagNull
	case wire.False:
		return TagFalse
	case wire.True:
		return TagTrue
	case wire.Array:
		return TagArray
	case wire.Object:
		return TagObject
	}
	return TagNull // unreachable for non-reserved codes; caller validates first
}
