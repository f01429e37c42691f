package wire

import (
	"math/big"
)

// BigNum is a decoded arbitrary-precision decimal: value = (-1)^sign *
// significand * 10^exponent, per spec.md §4.5.
type BigNum struct {
	Significand *big.Int // always non-negative; sign lives in Negative
	Exponent    int
	Negative    bool
}

// DecodeBigNum parses a raw big-number span (type-code byte, header byte,
// significand bytes, exponent bytes) as produced by the scanner.
func DecodeBigNum(b []byte) (BigNum, error) {
	if len(b) < 2 {
		return BigNum{}, ErrTruncatedLength
	}
	hdr := DecodeBigNumHeader(b[1])
	off := 2
	if off+hdr.SignificandBytes+hdr.ExponentBytes > len(b) {
		return BigNum{}, ErrTruncatedLength
	}

	sig := new(big.Int)
	sigBytes := b[off : off+hdr.SignificandBytes]
	for i := len(sigBytes) - 1; i >= 0; i-- {
		sig.Lsh(sig, 8)
		sig.Or(sig, big.NewInt(int64(sigBytes[i])))
	}
	off += hdr.SignificandBytes

	var exp int
	if hdr.ExponentBytes > 0 {
		expBytes := b[off : off+hdr.ExponentBytes]
		var v int64
		for i := hdr.ExponentBytes - 1; i >= 0; i-- {
			v = v<<8 | int64(expBytes[i])
		}
		signBit := int64(1) << uint(hdr.ExponentBytes*8-1)
		if v&signBit != 0 {
			v |= ^int64(0) << uint(hdr.ExponentBytes*8)
		}
		exp = int(v)
	}

	return BigNum{Significand: sig, Exponent: exp, Negative: hdr.Negative}, nil
}

// EncodeBigNum appends the minimal encoding of a big number: type code, one
// header byte, the little-endian significand, then the little-endian
// two's-complement exponent (0 bytes if exponent is 0).
func EncodeBigNum(dst []byte, sig *big.Int, exponent int, negative bool) []byte {
	sigBytes := sig.Bytes() // big-endian, no leading zero byte beyond a bare 0
	le := make([]byte, len(sigBytes))
	for i, c := range sigBytes {
		le[len(sigBytes)-1-i] = c
	}

	var expBytes []byte
	if exponent != 0 {
		expBytes = minimalSignedBytes(int64(exponent))
	}

	hdr := BigNumHeader{
		SignificandBytes: len(le),
		ExponentBytes:    len(expBytes),
		Negative:         negative,
	}
	dst = append(dst, byte(BigNumber), EncodeBigNumHeader(hdr))
	dst = append(dst, le...)
	dst = append(dst, expBytes...)
	return dst
}

func minimalSignedBytes(v int64) []byte {
	for n := 1; n <= 3; n++ {
		if fitsSigned(v, n) {
			return leBytes(uint64(v), n)
		}
	}
	return leBytes(uint64(v), 3)
}

// Float64 converts the big number to the nearest IEEE binary64 value.
func (b BigNum) Float64() float64 {
	f := new(big.Float).SetInt(b.Significand)
	if b.Exponent != 0 {
		scale := new(big.Float).SetFloat64(pow10(b.Exponent))
		f.Mul(f, scale)
	}
	v, _ := f.Float64()
	if b.Negative {
		v = -v
	}
	return v
}

func pow10(exp int) float64 {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	r := 1.0
	base := 10.0
	for exp > 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	if neg {
		return 1 / r
	}
	return r
}
