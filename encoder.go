package bonjson

import (
	"math"
	"math/big"

	"github.com/kstenerud/go-bonjson/internal/errkind"
	"github.com/kstenerud/go-bonjson/internal/policy"
	"github.com/kstenerud/go-bonjson/internal/wire"
)

// Encoder builds a canonical BONJSON document (C5). Containers are buffered
// per nesting level so their length field -- which must precede the body --
// can be written once the element/pair count is known; every container is
// emitted as a single non-continuing chunk, which is always valid per
// spec.md §4.2 and keeps the encoder a simple one-pass builder rather than a
// true streaming writer.
//
// Zero value is not usable; construct with NewEncoder or
// NewEncoderWithOptions.
type Encoder struct {
	policies policy.Policies
	limits   policy.Limits
	log      Logger
	hooks    Hooks
	stack    []*encCtx
	maxDepth int // deepest container nesting reached, for the Encoded hook
	err      error
}

type encCtx struct {
	buf           []byte
	isObject      bool
	count         int // elements (array) or pairs (object) written so far
	awaitingValue bool
}

// EncoderOptions configures an Encoder beyond Policies/Limits. Logger and
// Hooks default to NopLogger/NopHooks when left zero, matching
// NewEncoder's behavior.
type EncoderOptions struct {
	Policies policy.Policies
	Limits   policy.Limits
	Logger   Logger
	Hooks    Hooks
}

// NewEncoder constructs an Encoder. Pass DefaultPolicies()/DefaultLimits()
// for spec-mandated defaults. Logging and hooks are disabled; use
// NewEncoderWithOptions to supply a Logger/Hooks.
func NewEncoder(policies policy.Policies, limits policy.Limits) *Encoder {
	return NewEncoderWithOptions(EncoderOptions{Policies: policies, Limits: limits})
}

// NewEncoderWithOptions constructs an Encoder with an optional Logger/Hooks.
func NewEncoderWithOptions(opts EncoderOptions) *Encoder {
	e := &Encoder{
		policies: opts.Policies,
		limits:   opts.Limits.Coalesce(policy.DefaultLimits()),
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	e.stack = []*encCtx{{}}
	return e
}

func (e *Encoder) top() *encCtx { return e.stack[len(e.stack)-1] }

// fail records the first error encountered; subsequent calls become no-ops
// so callers can chain writes and check the error once at Finish.
func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
		e.log.Warn("bonjson: encode failed", Fields{"err": err.Error()})
	}
}

// offset approximates a byte position for diagnostics: the number of bytes
// already buffered in the currently open container.
func (e *Encoder) offset() int { return len(e.top().buf) }

// failPolicy records a policy-rejection error and fires PolicyViolation.
func (e *Encoder) failPolicy(kind errkind.Kind, msg string) {
	e.hooks.PolicyViolation(kind, e.offset())
	e.fail(errkind.NewEncode(kind, msg))
}

// failLimit records a resource-limit error and fires LimitExceeded.
func (e *Encoder) failLimit(kind errkind.Kind, msg string) {
	e.hooks.LimitExceeded(kind)
	e.fail(errkind.NewEncode(kind, msg))
}

func (e *Encoder) checkValueAllowed() bool {
	if e.err != nil {
		return false
	}
	top := e.top()
	if top.isObject && !top.awaitingValue {
		e.fail(errkind.NewEncode(errkind.InvalidType, "object value written while a key was expected"))
		return false
	}
	return true
}

func (e *Encoder) afterValueWritten() {
	top := e.top()
	if top.isObject {
		top.awaitingValue = false
	}
	top.count++
}

// Key writes an object key. Must be called exactly once before each value in
// an object context, and only in an object context.
func (e *Encoder) Key(key string) *Encoder {
	if e.err != nil {
		return e
	}
	top := e.top()
	if !top.isObject {
		e.fail(errkind.NewEncode(errkind.InvalidType, "Key called outside an object context"))
		return e
	}
	if top.awaitingValue {
		e.fail(errkind.NewEncode(errkind.InvalidType, "Key called twice without an intervening value"))
		return e
	}
	if e.policies.NUL == policy.NulReject && containsNUL(key) {
		e.failPolicy(errkind.NulCharacterInString, "NUL character in object key under reject policy")
		return e
	}
	e.writeStringBytes(top, []byte(key))
	top.awaitingValue = true
	return e
}

func containsNUL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}
	return false
}

// Null writes a null value.
func (e *Encoder) Null() *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	top := e.top()
	top.buf = append(top.buf, byte(wire.Null))
	e.afterValueWritten()
	return e
}

// Bool writes a boolean value.
func (e *Encoder) Bool(v bool) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	top := e.top()
	if v {
		top.buf = append(top.buf, byte(wire.True))
	} else {
		top.buf = append(top.buf, byte(wire.False))
	}
	e.afterValueWritten()
	return e
}

// Int writes a signed-integer value.
func (e *Encoder) Int(v int64) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	top := e.top()
	top.buf = wire.EncodeInt(top.buf, v)
	e.afterValueWritten()
	return e
}

// Uint writes an unsigned-integer value.
func (e *Encoder) Uint(v uint64) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	top := e.top()
	top.buf = wire.EncodeUint(top.buf, v)
	e.afterValueWritten()
	return e
}

// Float writes a floating-point value, choosing the narrowest IEEE form
// (16/32/64-bit) that round-trips it exactly, per spec.md §4.3's "minimal
// width" rule applied to floats. NaN/+-Inf are handled per the Float policy.
func (e *Encoder) Float(v float64) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	if v == 0 && math.Signbit(v) {
		// Negative zero has no integer-typed representation in BONJSON, and
		// spec.md §9 leaves the sign-bit decision implementation-defined;
		// this encoder folds -0.0 to integer 0, same as the source it was
		// distilled from.
		return e.Int(0)
	}
	if isNonFinite(v) {
		switch e.policies.Float {
		case policy.FloatReject:
			e.failPolicy(errkind.NonConformingFloat, "non-finite float under reject policy")
			return e
		case policy.FloatAsString:
			str := e.policies.FloatStrings.NaN
			if v > 0 {
				str = e.policies.FloatStrings.PosInf
			} else if v < 0 {
				str = e.policies.FloatStrings.NegInf
			}
			return e.String(str)
		}
	}
	top := e.top()
	switch {
	case wire.FitsFloat16(v):
		top.buf = wire.EncodeFloat16(top.buf, v)
	case wire.FitsFloat32(v):
		top.buf = wire.EncodeFloat32(top.buf, v)
	default:
		top.buf = wire.EncodeFloat64(top.buf, v)
	}
	e.afterValueWritten()
	return e
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// BigNum writes an arbitrary-precision decimal value.
func (e *Encoder) BigNum(b BigNum) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	top := e.top()
	top.buf = wire.EncodeBigNum(top.buf, b.Significand, b.Exponent, b.Negative)
	e.afterValueWritten()
	return e
}

// BigInt writes an exact big.Int value.
func (e *Encoder) BigInt(v *big.Int) *Encoder {
	neg := v.Sign() < 0
	abs := new(big.Int).Abs(v)
	return e.BigNum(BigNum{Significand: abs, Exponent: 0, Negative: neg})
}

// String writes a string value, applying the NUL policy.
func (e *Encoder) String(s string) *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	if e.policies.NUL == policy.NulReject && containsNUL(s) {
		e.failPolicy(errkind.NulCharacterInString, "NUL character in string under reject policy")
		return e
	}
	top := e.top()
	e.writeStringBytes(top, []byte(s))
	e.afterValueWritten()
	return e
}

// writeStringBytes appends a string's type code, length field, and payload
// to ctx.buf. Used for both object keys (which bypass afterValueWritten) and
// string values. Short-form (<=15 bytes) is used whenever it fits, matching
// spec.md §4.4's "use the shortest valid encoding" canonical-form rule.
func (e *Encoder) writeStringBytes(ctx *encCtx, b []byte) {
	if len(b) <= 15 {
		ctx.buf = append(ctx.buf, byte(wire.ShortStringCode(len(b))))
		ctx.buf = append(ctx.buf, b...)
		return
	}
	ctx.buf = append(ctx.buf, byte(wire.LongString))
	ctx.buf = wire.EncodeLength(ctx.buf, uint64(len(b)), false)
	ctx.buf = append(ctx.buf, b...)
}

// BeginArray opens an array value. Must be closed with EndContainer.
func (e *Encoder) BeginArray() *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	return e.pushContainer(byte(wire.Array), false)
}

// BeginObject opens an object value. Keys and values alternate via Key then
// one value-writing call; close with EndContainer.
func (e *Encoder) BeginObject() *Encoder {
	if !e.checkValueAllowed() {
		return e
	}
	return e.pushContainer(byte(wire.Object), true)
}

func (e *Encoder) pushContainer(typeCode byte, isObject bool) *Encoder {
	// len(e.stack) excludes the synthetic base frame from the count, so a
	// document nested exactly MaxDepth containers deep succeeds here just
	// as it does in the scanner's equivalent check (internal/posmap/scan.go).
	if len(e.stack) > e.limits.MaxDepth {
		e.failLimit(errkind.ContainerTooDeep, "nesting exceeds max depth")
		return e
	}
	e.top().buf = append(e.top().buf, typeCode)
	e.stack = append(e.stack, &encCtx{isObject: isObject})
	if len(e.stack)-1 > e.maxDepth {
		e.maxDepth = len(e.stack) - 1
	}
	return e
}

// EndContainer closes the most recently opened array or object.
func (e *Encoder) EndContainer() *Encoder {
	if e.err != nil {
		return e
	}
	if len(e.stack) < 2 {
		e.fail(errkind.NewEncode(errkind.InvalidType, "EndContainer called with no open container"))
		return e
	}
	ctx := e.top()
	if ctx.isObject && ctx.awaitingValue {
		e.fail(errkind.NewEncode(errkind.InvalidType, "EndContainer called with a key but no value"))
		return e
	}
	if ctx.count > e.limits.MaxContainerSize {
		e.failLimit(errkind.ContainerTooLarge, "container exceeds max element count")
		return e
	}
	e.stack = e.stack[:len(e.stack)-1]
	parent := e.top()
	parent.buf = wire.EncodeLength(parent.buf, uint64(ctx.count), false)
	parent.buf = append(parent.buf, ctx.buf...)
	e.afterValueWritten()
	return e
}

// Finish returns the completed document. Returns an error if any container
// is still open, the encoder recorded a prior error, or the finished
// document exceeds MaxDocumentSize.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(e.stack) != 1 {
		return nil, errkind.NewEncode(errkind.ContainerTooDeep, "Finish called with unclosed containers")
	}
	out := e.stack[0].buf
	if len(out) > e.limits.MaxDocumentSize {
		e.hooks.LimitExceeded(errkind.DocumentTooLarge)
		return nil, errkind.NewEncode(errkind.DocumentTooLarge, policy.DocumentTooLargeMsg(len(out), e.limits.MaxDocumentSize))
	}
	e.log.Debug("bonjson: encode complete", Fields{"bytes": len(out), "depth": e.maxDepth})
	e.hooks.Encoded(len(out), e.maxDepth)
	return out, nil
}

// Encode builds the full document for a single Value tree, using
// DefaultPolicies/DefaultLimits.
func Encode(v Value) ([]byte, error) {
	return EncodeWithOptions(v, DefaultPolicies(), DefaultLimits())
}

// EncodeWithOptions builds the full document for v under the given policies
// and limits.
func EncodeWithOptions(v Value, policies Policies, limits Limits) ([]byte, error) {
	e := NewEncoder(policies, limits)
	writeValue(e, v)
	return e.Finish()
}

func writeValue(e *Encoder, v Value) {
	switch v.Kind() {
	case KindNull:
		e.Null()
	case KindBool:
		e.Bool(v.AsBool())
	case KindInt64:
		e.Int(v.AsInt())
	case KindUint64:
		e.Uint(v.AsUint())
	case KindFloat64:
		e.Float(v.AsFloat())
	case KindBigNum:
		e.BigNum(v.AsBigNum())
	case KindString:
		e.String(v.AsString())
	case KindArray:
		e.BeginArray()
		for _, elem := range v.AsArray() {
			writeValue(e, elem)
		}
		e.EndContainer()
	case KindObject:
		e.BeginObject()
		for _, p := range v.AsObject() {
			e.Key(p.Key)
			writeValue(e, p.Value)
		}
		e.EndContainer()
	}
}
