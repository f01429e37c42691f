package compat

import (
	"math/big"
	"testing"

	"github.com/kstenerud/go-bonjson"
)

func sampleValue() bonjson.Value {
	return bonjson.Object(
		bonjson.Pair{Key: "name", Value: bonjson.String("gopher")},
		bonjson.Pair{Key: "count", Value: bonjson.Int(7)},
		bonjson.Pair{Key: "ratio", Value: bonjson.Float(1.5)},
		bonjson.Pair{Key: "tags", Value: bonjson.Array(bonjson.String("a"), bonjson.String("b"))},
		bonjson.Pair{Key: "active", Value: bonjson.Bool(true)},
		bonjson.Pair{Key: "nothing", Value: bonjson.Null()},
	)
}

func TestCBORRoundTrip(t *testing.T) {
	v := sampleValue()
	b, err := ToCBOR(v, true)
	if err != nil {
		t.Fatalf("ToCBOR: %v", err)
	}
	got, err := FromCBOR(b)
	if err != nil {
		t.Fatalf("FromCBOR: %v", err)
	}
	name, ok := got.Get("name")
	if !ok || name.AsString() != "gopher" {
		t.Fatalf("expected name=gopher, got %+v", got)
	}
	tags, ok := got.Get("tags")
	if !ok || len(tags.AsArray()) != 2 {
		t.Fatalf("expected 2 tags, got %+v", tags)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	v := sampleValue()
	b, err := ToMsgpack(v)
	if err != nil {
		t.Fatalf("ToMsgpack: %v", err)
	}
	got, err := FromMsgpack(b)
	if err != nil {
		t.Fatalf("FromMsgpack: %v", err)
	}
	count, ok := got.Get("count")
	if !ok || count.AsInt() != 7 {
		t.Fatalf("expected count=7, got %+v", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v := sampleValue()
	b, err := ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	active, ok := got.Get("active")
	if !ok || active.AsBool() != true {
		t.Fatalf("expected active=true, got %+v", got)
	}
}

func TestStructValueRoundTrip(t *testing.T) {
	v := sampleValue()
	sv, err := ToStructValue(v)
	if err != nil {
		t.Fatalf("ToStructValue: %v", err)
	}
	got, err := FromStructValue(sv)
	if err != nil {
		t.Fatalf("FromStructValue: %v", err)
	}
	ratio, ok := got.Get("ratio")
	if !ok || ratio.AsFloat() != 1.5 {
		t.Fatalf("expected ratio=1.5, got %+v", got)
	}
	// structpb has no integer distinction: count comes back as a float.
	count, ok := got.Get("count")
	if !ok || count.Kind() != bonjson.KindFloat64 || count.AsFloat() != 7 {
		t.Fatalf("expected count to round-trip as KindFloat64(7), got %+v", count)
	}
}

func TestBigNumToFromString(t *testing.T) {
	bn := bonjson.BigNum{Significand: big.NewInt(12345), Exponent: -2, Negative: true}
	s := BigNumToString(bn)
	if s != "-12345e-2" {
		t.Fatalf("unexpected rendering: %q", s)
	}
	got, err := BigNumFromString(s)
	if err != nil {
		t.Fatalf("BigNumFromString: %v", err)
	}
	if got.Significand.Cmp(bn.Significand) != 0 || got.Exponent != bn.Exponent || got.Negative != bn.Negative {
		t.Fatalf("round-trip mismatch: want %+v got %+v", bn, got)
	}
}

func TestBigNumFromStringWithDecimalPoint(t *testing.T) {
	got, err := BigNumFromString("123.45")
	if err != nil {
		t.Fatalf("BigNumFromString: %v", err)
	}
	if got.Float64() != 123.45 {
		t.Fatalf("expected 123.45, got %v", got.Float64())
	}
}

func TestMaxDecodeBytesRejectsOversized(t *testing.T) {
	wrapped := MaxDecodeBytes(4, FromJSON)
	if _, err := wrapped([]byte(`12345`)); err == nil {
		t.Fatalf("expected oversized payload to be rejected")
	}
	if _, err := wrapped([]byte(`1`)); err != nil {
		t.Fatalf("expected small payload to pass through, got %v", err)
	}
}

func TestBigNumRoundTripIsLossyAsString(t *testing.T) {
	v := bonjson.BigFromInt(big.NewInt(999))
	b, err := ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := FromJSON(b)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Kind() != bonjson.KindString {
		t.Fatalf("expected big number to round-trip through JSON as a string, got %v", got.Kind())
	}
}
