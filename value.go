package bonjson

import (
	"math/big"

	"github.com/kstenerud/go-bonjson/internal/wire"
)

// Kind identifies the logical type of a Value.
type Kind byte

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindBigNum
	KindString
	KindArray
	KindObject
)

// BigNum is an arbitrary-precision decimal: (-1)^sign * significand * 10^exp.
type BigNum = wire.BigNum

// Value is a materialized BONJSON value tree, the host-language bridge (C9):
// a tagged union mirroring JSON's type system plus BONJSON's big-number and
// distinct signed/unsigned integer extensions. Exactly one field beyond Kind
// is meaningful per variant; the constructors below are the intended way to
// build one.
type Value struct {
	kind Kind

	b   bool
	i   int64
	u   uint64
	f   float64
	big BigNum
	s   string
	arr []Value
	obj []Pair
}

// Pair is one key/value entry of an Object Value, preserving insertion order
// (BONJSON, like JSON, treats object key order as significant for
// round-tripping even though lookup is by key).
type Pair struct {
	Key   string
	Value Value
}

func (v Value) Kind() Kind { return v.kind }

// Null returns the Value representing JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a signed-integer Value.
func Int(i int64) Value { return Value{kind: KindInt64, i: i} }

// Uint returns an unsigned-integer Value.
func Uint(u uint64) Value { return Value{kind: KindUint64, u: u} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat64, f: f} }

// Big returns a big-number Value.
func Big(b BigNum) Value { return Value{kind: KindBigNum, big: b} }

// BigFromInt returns a big-number Value with zero exponent.
func BigFromInt(sig *big.Int) Value {
	neg := sig.Sign() < 0
	abs := new(big.Int).Abs(sig)
	return Big(BigNum{Significand: abs, Exponent: 0, Negative: neg})
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value containing elems in order.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// Object returns an object Value built from an ordered list of pairs.
func Object(pairs ...Pair) Value { return Value{kind: KindObject, obj: pairs} }

// ObjectFromMap returns an object Value from a Go map. Key order in the
// result is unspecified; use Object directly when order matters.
func ObjectFromMap(m map[string]Value) Value {
	pairs := make([]Pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return Object(pairs...)
}

func (v Value) AsBool() bool       { return v.b }
func (v Value) AsInt() int64       { return v.i }
func (v Value) AsUint() uint64     { return v.u }
func (v Value) AsFloat() float64   { return v.f }
func (v Value) AsBigNum() BigNum   { return v.big }
func (v Value) AsString() string   { return v.s }
func (v Value) AsArray() []Value   { return v.arr }
func (v Value) AsObject() []Pair   { return v.obj }

// Get returns the value paired with key in an Object Value, and whether it
// was found. Linear scan: Value trees are meant for small, fully
// materialized documents; for O(1) keyed lookup into a large decoded
// document without materializing it, use Map.FindKey instead.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.obj {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}
