// Package policy defines the security-guard configuration (C8, spec.md
// §4.8) shared by the encoder and the position-map scanner. It lives under
// internal so both internal/posmap and the root bonjson package (which
// re-exports the types for callers) can import it without a cycle.
//
// Shape grounded on cascache's Options[V] + defaults.go's coalesce() idiom:
// a plain struct of named options, zero value meaning "use the default".
package policy

import "github.com/dustin/go-humanize"

// UTF8Policy selects how invalid UTF-8 is handled at decode time.
type UTF8Policy byte

const (
	UTF8Reject UTF8Policy = iota
	UTF8Replace
	UTF8Delete
)

// NulPolicy governs U+0000 code points in strings, at encode and decode.
type NulPolicy byte

const (
	NulReject NulPolicy = iota
	NulAllow
)

// DuplicateKeyPolicy governs repeated object keys at decode time.
type DuplicateKeyPolicy byte

const (
	DuplicateReject DuplicateKeyPolicy = iota
	DuplicateKeepFirst
	DuplicateKeepLast
)

// FloatPolicy governs NaN/+-Inf at encode and decode time.
type FloatPolicy byte

const (
	FloatReject FloatPolicy = iota
	FloatAllow
	FloatAsString
)

// TrailingBytesPolicy governs bytes left over after the root value decodes.
type TrailingBytesPolicy byte

const (
	TrailingReject TrailingBytesPolicy = iota
	TrailingAllow
)

// LengthPolicy governs non-canonical (over-long) length fields at decode
// time.
type LengthPolicy byte

const (
	LengthReject LengthPolicy = iota
	LengthAllow
)

// FloatStrings names the three strings used to represent non-finite floats
// under FloatAsString.
type FloatStrings struct {
	PosInf string
	NegInf string
	NaN    string
}

// DefaultFloatStrings matches the conventional JSON-adjacent spellings.
func DefaultFloatStrings() FloatStrings {
	return FloatStrings{PosInf: "Infinity", NegInf: "-Infinity", NaN: "NaN"}
}

// Policies aggregates every security-guard policy from spec.md §4.8's table.
type Policies struct {
	UTF8            UTF8Policy
	NUL             NulPolicy
	DuplicateKey    DuplicateKeyPolicy
	Float           FloatPolicy
	FloatStrings    FloatStrings
	TrailingBytes   TrailingBytesPolicy
	NonCanonicalLen LengthPolicy
}

// Default returns the spec.md-mandated defaults: reject everything lenient.
func Default() Policies {
	return Policies{
		UTF8:            UTF8Reject,
		NUL:             NulReject,
		DuplicateKey:    DuplicateReject,
		Float:           FloatReject,
		FloatStrings:    DefaultFloatStrings(),
		TrailingBytes:   TrailingReject,
		NonCanonicalLen: LengthReject,
	}
}

// Limits bounds resource consumption during encode and decode.
type Limits struct {
	MaxDepth         int
	MaxStringLength  int
	MaxContainerSize int
	MaxDocumentSize  int
	MaxChunks        int // per long-form string, and per container
}

// DefaultLimits returns the spec.md §4.8 default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         512,
		MaxStringLength:  10_000_000,
		MaxContainerSize: 1_000_000,
		MaxDocumentSize:  2_000_000_000,
		MaxChunks:        100,
	}
}

// Coalesce fills zero-valued fields of l with d's values.
func (l Limits) Coalesce(d Limits) Limits {
	if l.MaxDepth == 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxStringLength == 0 {
		l.MaxStringLength = d.MaxStringLength
	}
	if l.MaxContainerSize == 0 {
		l.MaxContainerSize = d.MaxContainerSize
	}
	if l.MaxDocumentSize == 0 {
		l.MaxDocumentSize = d.MaxDocumentSize
	}
	if l.MaxChunks == 0 {
		l.MaxChunks = d.MaxChunks
	}
	return l
}

// DocumentTooLargeMsg formats a human-readable limit-exceeded message.
func DocumentTooLargeMsg(size, max int) string {
	return "document size " + humanize.Bytes(uint64(size)) + " exceeds limit " + humanize.Bytes(uint64(max))
}

// StringTooLongMsg formats a human-readable limit-exceeded message.
func StringTooLongMsg(size, max int) string {
	return "string length " + humanize.Bytes(uint64(size)) + " exceeds limit " + humanize.Bytes(uint64(max))
}
