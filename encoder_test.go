package bonjson

import (
	"math/big"
	"testing"
)

func decodeRoot(t *testing.T, data []byte) (*Map, Value) {
	t.Helper()
	m, err := Decode(data, DefaultPolicies(), DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, err := m.Value(m.Root())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	return m, v
}

func TestEncodeDecodeScalars(t *testing.T) {
	cases := []Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(42),
		Int(-42),
		Uint(1 << 63), // above math.MaxInt64: only the unsigned form holds it
		Float(3.5),
		String("hello"),
		String(""),
	}
	for _, v := range cases {
		data, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%v): %v", v, err)
		}
		_, got := decodeRoot(t, data)
		if got.Kind() != v.Kind() {
			t.Fatalf("kind mismatch: want %v got %v", v.Kind(), got.Kind())
		}
	}
}

func TestEncodeDecodeArray(t *testing.T) {
	v := Array(Int(1), Int(2), String("three"), Array(), Bool(true))
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, got := decodeRoot(t, data)
	if got.Kind() != KindArray || len(got.AsArray()) != 5 {
		t.Fatalf("unexpected decoded array: %+v", got)
	}
	if got.AsArray()[0].AsInt() != 1 || got.AsArray()[2].AsString() != "three" {
		t.Fatalf("unexpected array contents: %+v", got.AsArray())
	}
}

func TestEncodeDecodeObject(t *testing.T) {
	v := Object(
		Pair{Key: "a", Value: Int(1)},
		Pair{Key: "b", Value: String("two")},
		Pair{Key: "c", Value: Object(Pair{Key: "nested", Value: Bool(true)})},
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, got := decodeRoot(t, data)
	if got.Kind() != KindObject {
		t.Fatalf("expected object, got %v", got.Kind())
	}
	inner, ok := got.Get("c")
	if !ok || inner.Kind() != KindObject {
		t.Fatalf("expected nested object under \"c\"")
	}
	nested, ok := inner.Get("nested")
	if !ok || nested.AsBool() != true {
		t.Fatalf("expected nested.nested == true")
	}

	// Exercise the indexed accessors too, not just Value materialization.
	root := m.Root()
	if m.TypeAt(root) != KindObject {
		t.Fatalf("TypeAt(root) = %v", m.TypeAt(root))
	}
	valIdx, ok := m.FindKey(root, "b")
	if !ok || m.StringAt(valIdx) != "two" {
		t.Fatalf("FindKey(\"b\") = %d, %v", valIdx, ok)
	}
}

func TestEncodeDecodeBigNum(t *testing.T) {
	v := BigFromInt(big.NewInt(123456789012345))
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, got := decodeRoot(t, data)
	if got.Kind() != KindBigNum {
		t.Fatalf("expected KindBigNum, got %v", got.Kind())
	}
	if got.AsBigNum().Significand.Cmp(big.NewInt(123456789012345)) != 0 {
		t.Fatalf("unexpected significand %v", got.AsBigNum().Significand)
	}
}

func TestEncodeRejectsNonFiniteFloatByDefault(t *testing.T) {
	e := NewEncoder(DefaultPolicies(), DefaultLimits())
	e.Float(posInf())
	if _, err := e.Finish(); err == nil {
		t.Fatalf("expected error encoding +Inf under FloatReject")
	}
}

func TestEncodeFloatAsString(t *testing.T) {
	policies := DefaultPolicies()
	policies.Float = FloatAsString
	e := NewEncoder(policies, DefaultLimits())
	e.Float(posInf())
	data, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	m, err := Decode(data, DefaultPolicies(), DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.TypeAt(m.Root()) != KindString || m.StringAt(m.Root()) != policies.FloatStrings.PosInf {
		t.Fatalf("expected float-as-string substitution, got %v %q", m.TypeAt(m.Root()), m.StringAt(m.Root()))
	}
}

func TestEncoderRejectsKeyOutsideObject(t *testing.T) {
	e := NewEncoder(DefaultPolicies(), DefaultLimits())
	e.BeginArray()
	e.Key("x")
	if _, err := e.Finish(); err == nil {
		t.Fatalf("expected error calling Key inside an array")
	}
}

func TestEncoderRejectsUnclosedContainer(t *testing.T) {
	e := NewEncoder(DefaultPolicies(), DefaultLimits())
	e.BeginArray()
	e.Int(1)
	if _, err := e.Finish(); err == nil {
		t.Fatalf("expected error finishing with an unclosed array")
	}
}

func TestDuplicateKeyKeepLast(t *testing.T) {
	v := Object(
		Pair{Key: "x", Value: Int(1)},
		Pair{Key: "x", Value: Int(2)},
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	policies := DefaultPolicies()
	policies.DuplicateKey = DuplicateKeepLast
	m, err := Decode(data, policies, DefaultLimits())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := m.Value(m.Root())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	pairs := got.AsObject()
	if len(pairs) != 1 || pairs[0].Value.AsInt() != 2 {
		t.Fatalf("expected a single winning pair with value 2, got %+v", pairs)
	}
}

func TestDuplicateKeyRejectByDefault(t *testing.T) {
	v := Object(
		Pair{Key: "x", Value: Int(1)},
		Pair{Key: "x", Value: Int(2)},
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(data, DefaultPolicies(), DefaultLimits()); err == nil {
		t.Fatalf("expected duplicate key rejected under default policy")
	}
}

func posInf() float64 {
	var f float64 = 1
	for i := 0; i < 2000; i++ {
		f *= 10
	}
	return f
}
