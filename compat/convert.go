// Package compat bridges a bonjson.Value tree to and from other wire
// formats -- a realistic feature for a codec whose entire purpose is JSON
// interop, repurposed from the teacher's pluggable Codec[V] concept
// (codec/cbor.go, codec/json.go, codec/msgpack.go, codec/protobuf.go,
// codec/raw.go): instead of "(de)serialize an arbitrary caller type V",
// compat converts a decoded BONJSON document directly into the equivalent
// tree shape the other library already speaks.
//
// Every bridge in this package is lossy: a big number round-trips as its
// decimal-string text form, since none of JSON, CBOR's generic decode path,
// msgpack's, or structpb's Value have a native arbitrary-precision decimal.
// Round-tripping a document containing a big number through compat
// therefore yields a KindString Value back, not KindBigNum. Object key
// order is not preserved (see fromAny), and JSON and structpb return every
// number as KindFloat64, so integer kinds do not survive those two bridges.
package compat

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/kstenerud/go-bonjson"
)

// toAny flattens a Value into the generic any-tree shape encoding/json,
// msgpack, and cbor all marshal from.
func toAny(v bonjson.Value) any {
	switch v.Kind() {
	case bonjson.KindNull:
		return nil
	case bonjson.KindBool:
		return v.AsBool()
	case bonjson.KindInt64:
		return v.AsInt()
	case bonjson.KindUint64:
		return v.AsUint()
	case bonjson.KindFloat64:
		return v.AsFloat()
	case bonjson.KindBigNum:
		return bigNumToString(v.AsBigNum())
	case bonjson.KindString:
		return v.AsString()
	case bonjson.KindArray:
		elems := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toAny(e)
		}
		return out
	case bonjson.KindObject:
		pairs := v.AsObject()
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			out[p.Key] = toAny(p.Value)
		}
		return out
	default:
		return nil
	}
}

// fromAny rebuilds a Value from the any-tree shape encoding/json, msgpack,
// and cbor all unmarshal into. Object key order is whatever the source
// map's iteration order happened to be -- none of these formats preserve
// it across a generic map[string]any round-trip.
func fromAny(x any) (bonjson.Value, error) {
	switch t := x.(type) {
	case nil:
		return bonjson.Null(), nil
	case bool:
		return bonjson.Bool(t), nil
	case string:
		return bonjson.String(t), nil
	case []byte:
		return bonjson.String(string(t)), nil
	case int:
		return bonjson.Int(int64(t)), nil
	case int64:
		return bonjson.Int(t), nil
	case uint64:
		return bonjson.Uint(t), nil
	case float32:
		return bonjson.Float(float64(t)), nil
	case float64:
		return bonjson.Float(t), nil
	case []any:
		elems := make([]bonjson.Value, len(t))
		for i, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return bonjson.Value{}, err
			}
			elems[i] = v
		}
		return bonjson.Array(elems...), nil
	case map[string]any:
		pairs := make([]bonjson.Pair, 0, len(t))
		for k, e := range t {
			v, err := fromAny(e)
			if err != nil {
				return bonjson.Value{}, err
			}
			pairs = append(pairs, bonjson.Pair{Key: k, Value: v})
		}
		return bonjson.Object(pairs...), nil
	case map[interface{}]interface{}:
		pairs := make([]bonjson.Pair, 0, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return bonjson.Value{}, fmt.Errorf("compat: non-string map key %v (%T)", k, k)
			}
			v, err := fromAny(e)
			if err != nil {
				return bonjson.Value{}, err
			}
			pairs = append(pairs, bonjson.Pair{Key: ks, Value: v})
		}
		return bonjson.Object(pairs...), nil
	default:
		return bonjson.Value{}, fmt.Errorf("compat: unsupported decoded type %T", x)
	}
}

// BigNumToString renders a BigNum as "[-]<digits>e<exponent>". Every bridge
// in this package uses it to stand in for a big number, since none of the
// target formats have a native arbitrary-precision decimal; a caller that
// knows a particular string field is meant to be a big number can parse it
// back with BigNumFromString.
func BigNumToString(b bonjson.BigNum) string { return bigNumToString(b) }

// BigNumFromString parses the form BigNumToString produces, tolerating a
// decimal point in the mantissa (folded into the exponent).
func BigNumFromString(s string) (bonjson.BigNum, error) { return bigNumFromString(s) }

func bigNumToString(b bonjson.BigNum) string {
	sign := ""
	if b.Negative {
		sign = "-"
	}
	sig := b.Significand
	if sig == nil {
		sig = big.NewInt(0)
	}
	return sign + sig.String() + "e" + strconv.Itoa(b.Exponent)
}

// bigNumFromString parses the form bigNumToString produces, tolerating a
// decimal point in the mantissa (folded into the exponent) since that's
// the more common way a human or another library would write one down.
func bigNumFromString(s string) (bonjson.BigNum, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return bonjson.BigNum{}, fmt.Errorf("compat: invalid big number exponent in %q: %w", s, err)
		}
		exp = e
	}
	if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
		frac := mantissa[dot+1:]
		mantissa = mantissa[:dot] + frac
		exp -= len(frac)
	}

	sig, ok := new(big.Int).SetString(mantissa, 10)
	if !ok {
		return bonjson.BigNum{}, fmt.Errorf("compat: invalid big number %q", s)
	}
	return bonjson.BigNum{Significand: sig, Exponent: exp, Negative: neg}, nil
}
