package wire

import "testing"

func TestSmallIntRoundTrip(t *testing.T) {
	for v := int64(-100); v <= 100; v++ {
		code := SmallIntCode(v)
		if !code.IsSmallInt() {
			t.Fatalf("SmallIntCode(%d) = %#x, not IsSmallInt", v, code)
		}
		if got := code.SmallIntValue(); got != v {
			t.Fatalf("SmallIntCode(%d).SmallIntValue() = %d", v, got)
		}
	}
}

func TestFixedWidthIntCodes(t *testing.T) {
	for n := 1; n <= 8; n++ {
		u := UnsignedIntCode(n)
		if !u.IsUnsignedInt() || u.UnsignedIntByteCount() != n {
			t.Fatalf("UnsignedIntCode(%d) = %#x, byte count %d", n, u, u.UnsignedIntByteCount())
		}
		s := SignedIntCode(n)
		if !s.IsSignedInt() || s.SignedIntByteCount() != n {
			t.Fatalf("SignedIntCode(%d) = %#x, byte count %d", n, s, s.SignedIntByteCount())
		}
	}
}

func TestShortStringCodes(t *testing.T) {
	for n := 0; n <= 15; n++ {
		c := ShortStringCode(n)
		if !c.IsShortString() || c.ShortStringLen() != n {
			t.Fatalf("ShortStringCode(%d) = %#x, len %d", n, c, c.ShortStringLen())
		}
	}
}

func TestReservedRanges(t *testing.T) {
	for c := ReservedLoStart; c <= ReservedLoEnd; c++ {
		if !c.IsReserved() {
			t.Fatalf("%#x should be reserved (lo range)", byte(c))
		}
	}
	for c := ReservedHiStart; c <= ReservedHiEnd; c++ {
		if !c.IsReserved() {
			t.Fatalf("%#x should be reserved (hi range)", byte(c))
		}
	}
	if Null.IsReserved() || Array.IsReserved() || ShortStringStart.IsReserved() {
		t.Fatalf("well-known codes must not be reserved")
	}
}

func TestIsLongForm(t *testing.T) {
	if SmallIntMax.IsLongForm() {
		t.Fatalf("small int must not be long form")
	}
	if ShortStringEnd.IsLongForm() {
		t.Fatalf("short string must not be long form")
	}
	if !LongString.IsLongForm() || !Object.IsLongForm() {
		t.Fatalf("LongString/Object must be long form")
	}
}
