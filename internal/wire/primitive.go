package wire

import (
	"math"

	"github.com/x448/float16"
)

// Primitive codec (C3): integer, float, big-number, and short/long string
// byte-level I/O. Integer and bignum layouts use little-endian multi-byte
// fields in the same "fixed header, bounds-checked body" idiom as cascache's
// internal/wire.go (EncodeSingle/DecodeSingle); 16-bit floats are delegated
// to x448/float16, the one pack dependency that implements IEEE binary16
// exactly (it arrives transitively via fxamacker/cbor's half-float support
// and is promoted here to a direct import).

// EncodeInt appends the minimal encoding of a signed integer: small-int if
// -100<=v<=100, else the smallest fixed-width signed-or-unsigned form that
// holds it, per spec.md §4.3 ("signed N-byte if v fits in N bytes
// two's-complement; else unsigned N-byte if v >= 0 and fits in N bytes
// unsigned; always pick minimum N").
func EncodeInt(dst []byte, v int64) []byte {
	if v >= -100 && v <= 100 {
		return append(dst, byte(SmallIntCode(v)))
	}
	for n := 1; n <= 8; n++ {
		if fitsSigned(v, n) {
			return append(append(dst, byte(SignedIntCode(n))), leBytes(uint64(v), n)...)
		}
		if v >= 0 && n < 8 && uint64(v) < uint64(1)<<uint(n*8) {
			return append(append(dst, byte(UnsignedIntCode(n))), leBytes(uint64(v), n)...)
		}
	}
	return append(append(dst, byte(SignedIntCode(8))), leBytes(uint64(v), 8)...)
}

// EncodeUint appends the minimal encoding of an unsigned integer, using the
// same width-minimizing rule as EncodeInt applied to the value's numeric
// magnitude (values above math.MaxInt64 can only take the unsigned form).
func EncodeUint(dst []byte, v uint64) []byte {
	if v <= 100 {
		return append(dst, byte(SmallIntCode(int64(v))))
	}
	for n := 1; n <= 8; n++ {
		if v <= math.MaxInt64 && fitsSigned(int64(v), n) {
			return append(append(dst, byte(SignedIntCode(n))), leBytes(v, n)...)
		}
		if n >= 8 || v < uint64(1)<<uint(n*8) {
			return append(append(dst, byte(UnsignedIntCode(n))), leBytes(v, n)...)
		}
	}
	return append(append(dst, byte(UnsignedIntCode(8))), leBytes(v, 8)...)
}

func fitsSigned(v int64, n int) bool {
	if n >= 8 {
		return true
	}
	bits := uint(n*8 - 1)
	lo := -(int64(1) << bits)
	hi := int64(1)<<bits - 1
	return v >= lo && v <= hi
}

func leBytes(v uint64, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// DecodeUnsignedInt reads an N-byte little-endian unsigned integer.
func DecodeUnsignedInt(b []byte, n int) (uint64, error) {
	if len(b) < n {
		return 0, ErrTruncatedLength
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// DecodeSignedInt reads an N-byte little-endian two's-complement signed
// integer, sign-extended to 64 bits.
func DecodeSignedInt(b []byte, n int) (int64, error) {
	u, err := DecodeUnsignedInt(b, n)
	if err != nil {
		return 0, err
	}
	if n < 8 {
		signBit := uint64(1) << uint(n*8-1)
		if u&signBit != 0 {
			u |= ^uint64(0) << uint(n*8)
		}
	}
	return int64(u), nil
}

// EncodeFloat16 appends the IEEE binary16 encoding of f.
func EncodeFloat16(dst []byte, f float64) []byte {
	v := float16.Fromfloat32(float32(f))
	return append(dst, byte(v), byte(v>>8))
}

// DecodeFloat16 reads an IEEE binary16 value.
func DecodeFloat16(b []byte) (float64, error) {
	if len(b) < 2 {
		return 0, ErrTruncatedLength
	}
	v := float16.Float16(uint16(b[0]) | uint16(b[1])<<8)
	return float64(v.Float32()), nil
}

// EncodeFloat32 appends the IEEE binary32 encoding of f.
func EncodeFloat32(dst []byte, f float64) []byte {
	bits := math.Float32bits(float32(f))
	return append(dst, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

// DecodeFloat32 reads an IEEE binary32 value.
func DecodeFloat32(b []byte) (float64, error) {
	if len(b) < 4 {
		return 0, ErrTruncatedLength
	}
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float64(math.Float32frombits(bits)), nil
}

// EncodeFloat64 appends the IEEE binary64 encoding of f.
func EncodeFloat64(dst []byte, f float64) []byte {
	bits := math.Float64bits(f)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits)
		bits >>= 8
	}
	return append(dst, b...)
}

// DecodeFloat64 reads an IEEE binary64 value.
func DecodeFloat64(b []byte) (float64, error) {
	if len(b) < 8 {
		return 0, ErrTruncatedLength
	}
	var bits uint64
	for i := 7; i >= 0; i-- {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits), nil
}

// FitsFloat16 reports whether f round-trips exactly through IEEE binary16.
func FitsFloat16(f float64) bool {
	v := float16.Fromfloat32(float32(f))
	return float64(v.Float32()) == f
}

// FitsFloat32 reports whether f round-trips exactly through IEEE binary32.
func FitsFloat32(f float64) bool {
	return float64(float32(f)) == f
}

// BigNumHeader decodes the significand/exponent byte counts and sign from a
// big-number header byte (SSSSS EE N).
type BigNumHeader struct {
	SignificandBytes int
	ExponentBytes    int
	Negative         bool
}

// DecodeBigNumHeader parses the single header byte.
func DecodeBigNumHeader(h byte) BigNumHeader {
	return BigNumHeader{
		SignificandBytes: int(h >> 3),
		ExponentBytes:    int((h >> 1) & 0x3),
		Negative:         h&1 != 0,
	}
}

// EncodeBigNumHeader packs a header byte.
func EncodeBigNumHeader(h BigNumHeader) byte {
	b := byte(h.SignificandBytes<<3) | byte(h.ExponentBytes<<1)
	if h.Negative {
		b |= 1
	}
	return b
}
