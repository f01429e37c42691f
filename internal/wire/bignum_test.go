package wire

import (
	"math/big"
	"testing"
)

func TestBigNumRoundTrip(t *testing.T) {
	cases := []struct {
		sig  int64
		exp  int
		neg  bool
	}{
		{0, 0, false},
		{123456789, 0, false},
		{123456789, -5, true},
		{1, 127, false},
		{1, -128, true},
		{9223372036854775807, 3, false},
	}
	for _, c := range cases {
		sig := big.NewInt(c.sig)
		dst := EncodeBigNum(nil, sig, c.exp, c.neg)
		if TypeCode(dst[0]) != BigNumber {
			t.Fatalf("expected BigNumber type code, got %#x", dst[0])
		}
		got, err := DecodeBigNum(dst)
		if err != nil {
			t.Fatalf("case %+v: DecodeBigNum: %v", c, err)
		}
		if got.Significand.Cmp(sig) != 0 || got.Exponent != c.exp || got.Negative != c.neg {
			t.Fatalf("case %+v: got significand=%v exponent=%d negative=%v",
				c, got.Significand, got.Exponent, got.Negative)
		}
	}
}

func TestBigNumZeroExponentOmitsExponentBytes(t *testing.T) {
	dst := EncodeBigNum(nil, big.NewInt(42), 0, false)
	hdr := DecodeBigNumHeader(dst[1])
	if hdr.ExponentBytes != 0 {
		t.Fatalf("zero exponent should encode with 0 exponent bytes, got %d", hdr.ExponentBytes)
	}
}

func TestBigNumFloat64(t *testing.T) {
	// 12345 * 10^-2 = 123.45
	bn := BigNum{Significand: big.NewInt(12345), Exponent: -2, Negative: false}
	if got := bn.Float64(); got != 123.45 {
		t.Fatalf("expected 123.45, got %v", got)
	}
	bn.Negative = true
	if got := bn.Float64(); got != -123.45 {
		t.Fatalf("expected -123.45, got %v", got)
	}
}

func TestDecodeBigNumTruncated(t *testing.T) {
	if _, err := DecodeBigNum([]byte{byte(BigNumber)}); err != ErrTruncatedLength {
		t.Fatalf("expected truncated error for header-only input, got %v", err)
	}
	dst := EncodeBigNum(nil, big.NewInt(999999), 5, false)
	if _, err := DecodeBigNum(dst[:len(dst)-1]); err != ErrTruncatedLength {
		t.Fatalf("expected truncated error for short significand/exponent, got %v", err)
	}
}
