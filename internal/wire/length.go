package wire

import "errors"

// Length-field codec (C2).
//
// A chunk length field encodes payload = (count << 1) | continuation as a
// self-describing variable-width little-endian integer. The low bits of the
// first byte are a unary prefix: (width-1) consecutive 1-bits followed by a
// single terminating 0-bit; width is therefore one more than the position of
// that first 0-bit, counting from bit 0. The remaining bits -- the rest of
// the first byte, plus the whole of every following byte -- hold payload,
// shifted left past the prefix. Every width therefore carries exactly 7*width
// payload bits (1 byte -> 7 bits, 2 bytes -> 14, 3 -> 21, ...), which is what
// makes the prefix self-describing: the decoder never needs to know the
// count in advance to know how many bytes to read.
//
// This mirrors cascache's length-prefixed field idiom (vlen/keyLen in
// internal/wire.go) in spirit -- read the length before the payload, bounds
// check before every slice -- but the actual bit layout is BONJSON's own.

// MaxWidth is the largest length-field width this implementation supports.
// The unary prefix lives entirely in the first byte, so width cannot exceed
// 8; at width 8 the whole first byte is prefix and payload occupies bytes
// 2..8 in full (56 payload bits), comfortably over the format's >=32-bit
// floor.
const MaxWidth = 8

// ErrLengthFieldTooWide is returned when the first byte's unary prefix has no
// terminating 0-bit (0xFF), which this implementation treats as malformed:
// no payload this codec needs to represent requires width > 8.
var ErrLengthFieldTooWide = errors.New("bonjson: length field prefix exceeds supported width")

// ErrTruncatedLength is returned when fewer bytes remain than the prefix
// declares.
var ErrTruncatedLength = errors.New("bonjson: truncated length field")

// ErrNonCanonicalLength is returned when a length field could have been
// encoded in fewer bytes.
var ErrNonCanonicalLength = errors.New("bonjson: non-canonical length field")

// EncodeLength appends the minimal-width length field for (count,
// continuation) to dst and returns the result.
func EncodeLength(dst []byte, count uint64, continuation bool) []byte {
	payload := count << 1
	if continuation {
		payload |= 1
	}
	width := widthFor(payload)
	marker := uint64(1)<<(width-1) - 1 // width-1 trailing 1-bits, top bit 0
	v := (payload << uint(width)) | marker
	for i := 0; i < width; i++ {
		dst = append(dst, byte(v))
		v >>= 8
	}
	return dst
}

// widthFor returns the minimal byte width that can hold payload in 7*width
// bits.
func widthFor(payload uint64) int {
	for w := 1; w < MaxWidth; w++ {
		if payload < uint64(1)<<(7*w) {
			return w
		}
	}
	return MaxWidth
}

// DecodedLength is the result of decoding one length field.
type DecodedLength struct {
	Count        uint64
	Continuation bool
	Width        int // bytes consumed
}

// DecodeLength reads one length field from the start of b.
//
// Returns ErrTruncatedLength if b is shorter than the declared width, and
// ErrLengthFieldTooWide if the prefix has no terminator within one byte --
// both are structural failures and the returned DecodedLength is zero.
//
// Returns ErrNonCanonicalLength if a narrower width could have represented
// the same payload (canonical-form requirement, spec.md §4.2). Unlike the
// other two errors this one is policy-gated by the caller (spec.md §4.8's
// NonCanonicalLen policy): the DecodedLength is still fully populated, so a
// caller that tolerates non-canonical fields can use it despite the error.
func DecodeLength(b []byte) (DecodedLength, error) {
	if len(b) == 0 {
		return DecodedLength{}, ErrTruncatedLength
	}

	first := b[0]
	width := 0
	for i := 0; i < 8; i++ {
		if first&(1<<uint(i)) == 0 {
			width = i + 1
			break
		}
	}
	if width == 0 {
		return DecodedLength{}, ErrLengthFieldTooWide
	}
	if len(b) < width {
		return DecodedLength{}, ErrTruncatedLength
	}

	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	payload := v >> uint(width)

	result := DecodedLength{
		Count:        payload >> 1,
		Continuation: payload&1 != 0,
		Width:        width,
	}

	if width > 1 && payload < uint64(1)<<(7*(width-1)) {
		return result, ErrNonCanonicalLength
	}
	return result, nil
}
