package wire

import (
	"math"
	"testing"
)

func TestEncodeIntRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 100, -100, 101, -101, 127, -128, 32767, -32768,
		1 << 20, -(1 << 20), math.MaxInt64, math.MinInt64}
	for _, v := range values {
		b := EncodeInt(nil, v)
		code := TypeCode(b[0])
		var got int64
		switch {
		case code.IsSmallInt():
			got = code.SmallIntValue()
		case code.IsSignedInt():
			n := code.SignedIntByteCount()
			x, err := DecodeSignedInt(b[1:1+n], n)
			if err != nil {
				t.Fatalf("v=%d: %v", v, err)
			}
			got = x
		case code.IsUnsignedInt():
			n := code.UnsignedIntByteCount()
			x, err := DecodeUnsignedInt(b[1:1+n], n)
			if err != nil {
				t.Fatalf("v=%d: %v", v, err)
			}
			got = int64(x)
		default:
			t.Fatalf("v=%d: unexpected type code %#x", v, code)
		}
		if got != v {
			t.Fatalf("v=%d round-tripped to %d via code %#x", v, got, code)
		}
	}
}

func TestEncodeUintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 100, 101, 1 << 20, math.MaxInt64, math.MaxUint64}
	for _, v := range values {
		b := EncodeUint(nil, v)
		code := TypeCode(b[0])
		var got uint64
		switch {
		case code.IsSmallInt():
			got = uint64(code.SmallIntValue())
		case code.IsUnsignedInt():
			n := code.UnsignedIntByteCount()
			x, err := DecodeUnsignedInt(b[1:1+n], n)
			if err != nil {
				t.Fatalf("v=%d: %v", v, err)
			}
			got = x
		case code.IsSignedInt():
			n := code.SignedIntByteCount()
			x, err := DecodeSignedInt(b[1:1+n], n)
			if err != nil {
				t.Fatalf("v=%d: %v", v, err)
			}
			got = uint64(x)
		default:
			t.Fatalf("v=%d: unexpected type code %#x", v, code)
		}
		if got != v {
			t.Fatalf("v=%d round-tripped to %d via code %#x", v, got, code)
		}
	}
}

func TestEncodeIntMinimalWidth(t *testing.T) {
	// 101 doesn't fit small-int (max 100); must use the narrowest fixed form,
	// a single signed byte.
	b := EncodeInt(nil, 101)
	if len(b) != 2 || !TypeCode(b[0]).IsSignedInt() || TypeCode(b[0]).SignedIntByteCount() != 1 {
		t.Fatalf("101 should encode as 1-byte signed int, got % x", b)
	}
}

func TestFloatRoundTrips(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.5, 65504, -65504} {
		b := EncodeFloat16(nil, f)
		got, err := DecodeFloat16(b)
		if err != nil || got != f {
			t.Fatalf("float16 %v: got %v, err %v", f, got, err)
		}
	}
	for _, f := range []float64{0, 1, -1, 3.14159, math.MaxFloat32, -math.MaxFloat32} {
		b := EncodeFloat32(nil, f)
		got, err := DecodeFloat32(b)
		if err != nil || float32(got) != float32(f) {
			t.Fatalf("float32 %v: got %v, err %v", f, got, err)
		}
	}
	for _, f := range []float64{0, 1, -1, math.Pi, math.MaxFloat64, -math.MaxFloat64} {
		b := EncodeFloat64(nil, f)
		got, err := DecodeFloat64(b)
		if err != nil || got != f {
			t.Fatalf("float64 %v: got %v, err %v", f, got, err)
		}
	}
}

func TestDecodeFloatTruncated(t *testing.T) {
	if _, err := DecodeFloat16([]byte{0}); err != ErrTruncatedLength {
		t.Fatalf("float16: expected truncated error, got %v", err)
	}
	if _, err := DecodeFloat32([]byte{0, 0, 0}); err != ErrTruncatedLength {
		t.Fatalf("float32: expected truncated error, got %v", err)
	}
	if _, err := DecodeFloat64([]byte{0, 0, 0, 0, 0, 0, 0}); err != ErrTruncatedLength {
		t.Fatalf("float64: expected truncated error, got %v", err)
	}
}

func TestFitsFloat16(t *testing.T) {
	if !FitsFloat16(1.5) {
		t.Fatalf("1.5 should fit float16 exactly")
	}
	if FitsFloat16(1.0 / 3.0) {
		t.Fatalf("1/3 should not round-trip through float16")
	}
}

func TestFitsFloat32(t *testing.T) {
	if !FitsFloat32(1.5) {
		t.Fatalf("1.5 should fit float32 exactly")
	}
	if FitsFloat32(math.Pi) {
		t.Fatalf("pi should not round-trip exactly through float32")
	}
}

func TestBigNumHeaderRoundTrip(t *testing.T) {
	for sig := 0; sig <= 8; sig++ {
		for exp := 0; exp <= 3; exp++ {
			for _, neg := range []bool{false, true} {
				h := BigNumHeader{SignificandBytes: sig, ExponentBytes: exp, Negative: neg}
				got := DecodeBigNumHeader(EncodeBigNumHeader(h))
				if got != h {
					t.Fatalf("header %+v round-tripped to %+v", h, got)
				}
			}
		}
	}
}
