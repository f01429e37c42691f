package posmap

import (
	"math"

	"go.uber.org/multierr"

	"github.com/kstenerud/go-bonjson/internal/errkind"
	"github.com/kstenerud/go-bonjson/internal/obslog"
	"github.com/kstenerud/go-bonjson/internal/policy"
	"github.com/kstenerud/go-bonjson/internal/utf8validate"
	"github.com/kstenerud/go-bonjson/internal/wire"
)

// Scan performs the C6 position-map scan: a single iterative preorder pass
// over input that builds a dense Entry table and an owned copy of input (and,
// for chunk-reassembled or UTF-8-transformed strings, a second owned buffer).
//
// The container walk uses an explicit stack of frames rather than recursion,
// so nesting depth is governed by policy.Limits.MaxDepth rather than the Go
// call stack -- the scanner rejects ContainerTooDeep before it would ever
// recurse that far natively.
//
// Scan uses a NopLogger/NopHooks; use ScanWithOptions to observe scan events.
func Scan(input []byte, policies policy.Policies, limits policy.Limits) (*Map, error) {
	return ScanWithOptions(input, policies, limits, nil, nil)
}

// ScanWithOptions is Scan with an optional Logger and Hooks. A nil logger or
// hooks argument disables that observer (obslog.NopLogger/obslog.NopHooks).
func ScanWithOptions(input []byte, policies policy.Policies, limits policy.Limits, logger obslog.Logger, hooks obslog.Hooks) (*Map, error) {
	if logger == nil {
		logger = obslog.NopLogger{}
	}
	if hooks == nil {
		hooks = obslog.NopHooks{}
	}
	limits = limits.Coalesce(policy.DefaultLimits())

	if len(input) > limits.MaxDocumentSize {
		hooks.LimitExceeded(errkind.DocumentTooLarge)
		return nil, errkind.New(errkind.DocumentTooLarge, 0, policy.DocumentTooLargeMsg(len(input), limits.MaxDocumentSize))
	}

	s := &scanner{
		input:    append([]byte(nil), input...),
		policies: policies,
		limits:   limits,
		log:      logger,
		hooks:    hooks,
	}
	if err := s.run(); err != nil {
		return nil, err
	}

	if s.pos < len(s.input) && policies.TrailingBytes == policy.TrailingReject {
		return nil, s.policyErr(errkind.TrailingBytes, s.pos, "unconsumed bytes after root value")
	}

	logger.Debug("bonjson: scan complete", obslog.Fields{"bytes": len(s.input), "entries": len(s.entries)})
	hooks.Decoded(len(s.input), len(s.entries))

	return &Map{
		entries:   s.entries,
		input:     s.input,
		assembled: s.assembled,
		keyCaches: make([]keyCache, len(s.entries)),
		warnings:  s.warnings,
	}, nil
}

type frame struct {
	tag          Tag
	headerIndex  int
	childCount   int  // elements completed (array) or pairs completed (object)
	remaining    int  // units left in the currently open chunk
	continuation bool // whether another chunk follows once remaining hits 0
	chunksRead   int

	awaitingValue bool // object only: key of current pair already read
	lastKeyIndex  int
	lastKeyStr    string

	// duplicate-key bookkeeping, object frames only.
	seenCapped map[string]struct{} // DuplicateReject: presence only, capped at 256
	seenWinner map[string]int      // DuplicateKeepFirst/Last: key -> winning value entry index
}

const maxDistinctKeysUnderReject = 256

type scanner struct {
	input     []byte
	pos       int
	policies  policy.Policies
	limits    policy.Limits
	log       obslog.Logger
	hooks     obslog.Hooks
	entries   []Entry
	assembled []byte
	warnings  error
	stack     []*frame
	haveRoot  bool
}

// policyErr fires PolicyViolation and returns the corresponding DecodeError,
// for malformed input rejected by a configurable content-shape policy
// (duplicate keys, NUL/UTF-8 handling, non-canonical lengths, non-finite
// floats, trailing bytes).
func (s *scanner) policyErr(kind errkind.Kind, offset int, msg string) error {
	s.hooks.PolicyViolation(kind, offset)
	return errkind.New(kind, offset, msg)
}

// limitErr fires LimitExceeded and returns the corresponding DecodeError,
// for input rejected by a fixed resource bound (depth, size, string length,
// chunk count).
func (s *scanner) limitErr(kind errkind.Kind, offset int, msg string) error {
	s.hooks.LimitExceeded(kind)
	return errkind.New(kind, offset, msg)
}

func (s *scanner) run() error {
	for !s.haveRoot {
		if len(s.stack) == 0 {
			if err := s.readNext(false); err != nil {
				return err
			}
			continue
		}

		top := s.stack[len(s.stack)-1]

		if top.tag == TagObject && top.awaitingValue {
			if err := s.readNext(false); err != nil {
				return err
			}
			continue
		}

		if top.remaining > 0 {
			if top.tag == TagObject {
				if err := s.readNext(true); err != nil {
					return err
				}
			} else {
				if err := s.readNext(false); err != nil {
					return err
				}
			}
			continue
		}

		if top.continuation {
			if err := s.openChunk(top); err != nil {
				return err
			}
			continue
		}

		if err := s.popContainer(); err != nil {
			return err
		}
	}
	return nil
}

// openChunk reads the next chunk's length field for an already-open
// container and installs it onto the frame.
func (s *scanner) openChunk(f *frame) error {
	if f.chunksRead >= s.limits.MaxChunks {
		return s.limitErr(errkind.MaxChunksExceeded, s.pos, "container exceeds max chunk count")
	}
	dl, err := s.decodeLengthField()
	if err != nil {
		return err
	}
	f.chunksRead++
	f.remaining = int(dl.Count)
	f.continuation = dl.Continuation
	return nil
}

// decodeLengthField reads one length field at the current position,
// enforcing the non-canonical-length policy and the empty-chunk-continuation
// DoS rule, and advances s.pos past it.
func (s *scanner) decodeLengthField() (wire.DecodedLength, error) {
	dl, err := wire.DecodeLength(s.input[s.pos:])
	if err != nil {
		if err == wire.ErrNonCanonicalLength {
			if s.policies.NonCanonicalLen != policy.LengthAllow {
				return wire.DecodedLength{}, s.policyErr(errkind.NonCanonicalLength, s.pos, "over-long length field")
			}
			s.addWarning(errkind.New(errkind.NonCanonicalLength, s.pos, "over-long length field (allowed by policy)"))
		} else if err == wire.ErrTruncatedLength {
			return wire.DecodedLength{}, errkind.New(errkind.Truncated, s.pos, "truncated length field")
		} else {
			return wire.DecodedLength{}, errkind.New(errkind.InvalidData, s.pos, err.Error())
		}
	}
	if dl.Count == 0 && dl.Continuation {
		return wire.DecodedLength{}, s.limitErr(errkind.EmptyChunkContinuation, s.pos, "zero-length chunk with continuation set")
	}
	s.pos += dl.Width
	return dl, nil
}

func (s *scanner) addWarning(err error) {
	s.warnings = multierr.Append(s.warnings, err)
	s.log.Warn("bonjson: lenient-policy diagnostic", obslog.Fields{"err": err.Error()})
}

// pushContainer appends a placeholder header entry for an array or object
// and pushes its frame; the first chunk's length field is read on the next
// loop iteration via openChunk (continuation starts true for that reason).
func (s *scanner) pushContainer(tag Tag) error {
	if len(s.stack)+1 > s.limits.MaxDepth {
		return s.limitErr(errkind.ContainerTooDeep, s.pos, "nesting exceeds max depth")
	}
	idx := len(s.entries)
	s.entries = append(s.entries, Entry{Tag: tag, FirstChild: idx + 1})
	s.pos++ // past the type-code byte
	s.stack = append(s.stack, &frame{
		tag:          tag,
		headerIndex:  idx,
		continuation: true,
		lastKeyIndex: -1,
	})
	return nil
}

func (s *scanner) popContainer() error {
	f := s.stack[len(s.stack)-1]
	if f.tag == TagObject && f.awaitingValue {
		return errkind.New(errkind.Truncated, s.pos, "object closed with a key but no value")
	}
	if f.childCount > s.limits.MaxContainerSize {
		return s.limitErr(errkind.ContainerTooLarge, s.pos, "container exceeds max element count")
	}
	hdr := &s.entries[f.headerIndex]
	hdr.ChildCount = f.childCount
	hdr.NextSibling = len(s.entries)
	s.stack = s.stack[:len(s.stack)-1]
	return s.afterChildComplete(f.headerIndex)
}

// afterChildComplete is invoked exactly once per logical child that finishes
// directly under the (now current) top of stack: once for a scalar, once for
// a container when it pops. idx is the entry index of the thing that just
// completed.
func (s *scanner) afterChildComplete(idx int) error {
	if len(s.stack) == 0 {
		s.haveRoot = true
		return nil
	}
	top := s.stack[len(s.stack)-1]

	if top.tag == TagObject {
		if !top.awaitingValue {
			return s.afterKeyRead(top, idx)
		}
		return s.afterValueRead(top, idx)
	}

	top.childCount++
	top.remaining--
	if top.childCount > s.limits.MaxContainerSize {
		return s.limitErr(errkind.ContainerTooLarge, s.pos, "container exceeds max element count")
	}
	return nil
}

func (s *scanner) afterKeyRead(top *frame, idx int) error {
	if s.entries[idx].Tag != TagString {
		return errkind.New(errkind.InvalidObjectKey, s.pos, "object key must be a string")
	}
	key := s.stringBytes(&s.entries[idx])
	top.awaitingValue = true
	top.lastKeyIndex = idx
	top.lastKeyStr = string(key)
	return nil
}

func (s *scanner) afterValueRead(top *frame, idx int) error {
	key := top.lastKeyStr
	if err := s.dedupe(top, key, top.lastKeyIndex, idx); err != nil {
		return err
	}
	top.awaitingValue = false
	top.lastKeyIndex = -1
	top.childCount++
	top.remaining--
	if top.childCount > s.limits.MaxContainerSize {
		return s.limitErr(errkind.ContainerTooLarge, s.pos, "container exceeds max element count")
	}
	return nil
}

// dedupe applies the configured DuplicateKeyPolicy to the pair (keyIdx,
// valueIdx) just completed, marking losing entries inert as needed.
func (s *scanner) dedupe(top *frame, key string, keyIdx, valueIdx int) error {
	switch s.policies.DuplicateKey {
	case policy.DuplicateReject:
		if top.seenCapped == nil {
			top.seenCapped = make(map[string]struct{})
		}
		if _, dup := top.seenCapped[key]; dup {
			return s.policyErr(errkind.DuplicateObjectKey, s.pos, "duplicate object key: "+key)
		}
		if len(top.seenCapped) >= maxDistinctKeysUnderReject {
			return s.limitErr(errkind.TooManyKeys, s.pos, "object exceeds max distinct keys under reject policy")
		}
		top.seenCapped[key] = struct{}{}

	case policy.DuplicateKeepFirst:
		if top.seenWinner == nil {
			top.seenWinner = make(map[string]int)
		}
		if _, dup := top.seenWinner[key]; dup {
			s.entries[keyIdx].inert = true
			s.entries[valueIdx].inert = true
			return nil
		}
		top.seenWinner[key] = valueIdx

	case policy.DuplicateKeepLast:
		if top.seenWinner == nil {
			top.seenWinner = make(map[string]int)
		}
		if prevValueIdx, dup := top.seenWinner[key]; dup {
			s.entries[prevValueIdx].inert = true
			s.markPreviousKeyInert(prevValueIdx)
		}
		top.seenWinner[key] = valueIdx
	}
	return nil
}

// markPreviousKeyInert marks the key entry paired with a now-superseded
// value as inert. A key is always a single string entry immediately
// preceding its value's own entry (scalar or container header), so the
// key index is always valueIdx-1.
func (s *scanner) markPreviousKeyInert(prevValueIdx int) {
	if prevValueIdx > 0 {
		s.entries[prevValueIdx-1].inert = true
	}
}

// readNext reads one token at the current position. If wantKeyOnly, the
// token must be a string (an object key); otherwise any value type is
// accepted. Scalars and completed containers report completion via
// afterChildComplete; pushContainer instead leaves completion to the later
// popContainer call.
func (s *scanner) readNext(wantKeyOnly bool) error {
	if s.pos >= len(s.input) {
		return errkind.New(errkind.Truncated, s.pos, "unexpected end of input")
	}
	code := wire.TypeCode(s.input[s.pos])

	if wantKeyOnly && !(code.IsShortString() || code == wire.LongString) {
		return errkind.New(errkind.InvalidObjectKey, s.pos, "object key must be a string")
	}

	switch {
	case code.IsReserved():
		return errkind.New(errkind.InvalidType, s.pos, "reserved type code")
	case code.IsSmallInt():
		idx := s.appendEntry(Entry{Tag: TagInt, I64: code.SmallIntValue()})
		s.pos++
		return s.complete(wantKeyOnly, idx)
	case code.IsUnsignedInt():
		n := code.UnsignedIntByteCount()
		if s.pos+1+n > len(s.input) {
			return errkind.New(errkind.Truncated, s.pos, "truncated unsigned integer")
		}
		v, _ := wire.DecodeUnsignedInt(s.input[s.pos+1:], n)
		idx := s.appendEntry(Entry{Tag: TagUint, U64: v})
		s.pos += 1 + n
		return s.complete(wantKeyOnly, idx)
	case code.IsSignedInt():
		n := code.SignedIntByteCount()
		if s.pos+1+n > len(s.input) {
			return errkind.New(errkind.Truncated, s.pos, "truncated signed integer")
		}
		v, _ := wire.DecodeSignedInt(s.input[s.pos+1:], n)
		idx := s.appendEntry(Entry{Tag: TagInt, I64: v})
		s.pos += 1 + n
		return s.complete(wantKeyOnly, idx)
	case code.IsShortString():
		idx, err := s.readString()
		if err != nil {
			return err
		}
		return s.complete(wantKeyOnly, idx)
	}

	switch code {
	case wire.LongString:
		idx, err := s.readString()
		if err != nil {
			return err
		}
		return s.complete(wantKeyOnly, idx)
	case wire.BigNumber:
		idx, err := s.readBigNum()
		if err != nil {
			return err
		}
		return s.complete(wantKeyOnly, idx)
	case wire.Float16:
		return s.readFloat(wantKeyOnly, 2)
	case wire.Float32:
		return s.readFloat(wantKeyOnly, 4)
	case wire.Float64:
		return s.readFloat(wantKeyOnly, 8)
	case wire.Null:
		idx := s.appendEntry(Entry{Tag: TagNull})
		s.pos++
		return s.complete(wantKeyOnly, idx)
	case wire.False:
		idx := s.appendEntry(Entry{Tag: TagFalse})
		s.pos++
		return s.complete(wantKeyOnly, idx)
	case wire.True:
		idx := s.appendEntry(Entry{Tag: TagTrue})
		s.pos++
		return s.complete(wantKeyOnly, idx)
	case wire.Array:
		return s.pushContainer(TagArray)
	case wire.Object:
		return s.pushContainer(TagObject)
	}
	return errkind.New(errkind.InvalidType, s.pos, "unrecognized type code")
}

// complete reports that the scalar entry at idx has finished. wantKeyOnly is
// unused here: afterChildComplete already routes object reads to the key or
// value path by consulting the frame's own awaitingValue flag, which is
// false whenever readNext was called with wantKeyOnly set.
func (s *scanner) complete(wantKeyOnly bool, idx int) error {
	_ = wantKeyOnly
	return s.afterChildComplete(idx)
}

func (s *scanner) appendEntry(e Entry) int {
	e.NextSibling = len(s.entries) + 1
	idx := len(s.entries)
	s.entries = append(s.entries, e)
	return idx
}

func (s *scanner) readFloat(wantKeyOnly bool, width int) error {
	start := s.pos
	if start+1+width > len(s.input) {
		return errkind.New(errkind.Truncated, start, "truncated float")
	}
	var v float64
	var err error
	switch width {
	case 2:
		v, err = wire.DecodeFloat16(s.input[start+1:])
	case 4:
		v, err = wire.DecodeFloat32(s.input[start+1:])
	default:
		v, err = wire.DecodeFloat64(s.input[start+1:])
	}
	if err != nil {
		return errkind.New(errkind.Truncated, start, "truncated float")
	}
	s.pos += 1 + width

	if math.IsNaN(v) || math.IsInf(v, 0) {
		switch s.policies.Float {
		case policy.FloatReject:
			return s.policyErr(errkind.NonConformingFloat, start, "non-finite float under reject policy")
		case policy.FloatAsString:
			str := s.policies.FloatStrings.NaN
			if math.IsInf(v, 1) {
				str = s.policies.FloatStrings.PosInf
			} else if math.IsInf(v, -1) {
				str = s.policies.FloatStrings.NegInf
			}
			idx := s.emitOwnedString([]byte(str))
			return s.complete(wantKeyOnly, idx)
		}
		// FloatAllow: fall through and store the value as-is.
		s.addWarning(errkind.New(errkind.NonConformingFloat, start, "non-finite float allowed by policy"))
	}
	idx := s.appendEntry(Entry{Tag: TagFloat, F64: v})
	return s.complete(wantKeyOnly, idx)
}

// readString reads a short- or long-form string entry at the current
// position, applies the NUL and UTF-8 policies, and returns its entry index.
func (s *scanner) readString() (int, error) {
	code := wire.TypeCode(s.input[s.pos])

	var rawOff, rawLen int
	if code.IsShortString() {
		n := code.ShortStringLen()
		if s.pos+1+n > len(s.input) {
			return 0, errkind.New(errkind.Truncated, s.pos, "truncated short string")
		}
		rawOff, rawLen = s.pos+1, n
		s.pos += 1 + n
	} else {
		start := s.pos
		s.pos++ // past the long-string marker
		var buf []byte
		chunks := 0
		for {
			if chunks >= s.limits.MaxChunks {
				return 0, s.limitErr(errkind.MaxChunksExceeded, s.pos, "string exceeds max chunk count")
			}
			dl, err := s.decodeLengthField()
			if err != nil {
				return 0, err
			}
			chunks++
			n := int(dl.Count)
			if s.pos+n > len(s.input) {
				return 0, errkind.New(errkind.Truncated, s.pos, "truncated string chunk")
			}
			buf = append(buf, s.input[s.pos:s.pos+n]...)
			s.pos += n
			if len(buf) > s.limits.MaxStringLength {
				return 0, s.limitErr(errkind.StringTooLong, start, policy.StringTooLongMsg(len(buf), s.limits.MaxStringLength))
			}
			if !dl.Continuation {
				break
			}
		}
		// Multi-chunk strings never alias the input contiguously; store them
		// in the assembled buffer unconditionally, even if chunks == 1 for a
		// 1-chunk long-form string (kept simple: only the short-string form
		// gets the zero-copy path).
		if len(buf) > s.limits.MaxStringLength {
			return 0, s.limitErr(errkind.StringTooLong, start, policy.StringTooLongMsg(len(buf), s.limits.MaxStringLength))
		}
		return s.finishString(buf, true)
	}

	raw := s.input[rawOff : rawOff+rawLen]
	if rawLen > s.limits.MaxStringLength {
		return 0, s.limitErr(errkind.StringTooLong, s.pos, policy.StringTooLongMsg(rawLen, s.limits.MaxStringLength))
	}
	return s.finishStringBorrowed(raw, rawOff)
}

// finishStringBorrowed applies the NUL/UTF-8 policies to a string that, if
// unmodified, can keep aliasing the owned input directly at rawOff.
func (s *scanner) finishStringBorrowed(raw []byte, rawOff int) (int, error) {
	if s.policies.NUL == policy.NulReject && utf8validate.ContainsNUL(raw) {
		return 0, s.policyErr(errkind.NulCharacterInString, s.pos, "NUL character in string under reject policy")
	}
	out, changed, err := utf8validate.Validate(raw, utf8validate.Policy(s.policies.UTF8))
	if err != nil {
		return 0, s.policyErr(errkind.InvalidUTF8, s.pos, "invalid UTF-8 under reject policy")
	}
	if !changed {
		return s.appendEntry(Entry{Tag: TagString, StrOff: rawOff, StrLen: len(raw)}), nil
	}
	s.addWarning(errkind.New(errkind.InvalidUTF8, s.pos, "invalid UTF-8 transformed by policy"))
	return s.emitOwnedString(out), nil
}

// finishString applies the NUL/UTF-8 policies to a long-form string and
// always stores the result in the assembled buffer; the bool is unused.
func (s *scanner) finishString(raw []byte, _ bool) (int, error) {
	if s.policies.NUL == policy.NulReject && utf8validate.ContainsNUL(raw) {
		return 0, s.policyErr(errkind.NulCharacterInString, s.pos, "NUL character in string under reject policy")
	}
	out, changed, err := utf8validate.Validate(raw, utf8validate.Policy(s.policies.UTF8))
	if err != nil {
		return 0, s.policyErr(errkind.InvalidUTF8, s.pos, "invalid UTF-8 under reject policy")
	}
	if changed {
		s.addWarning(errkind.New(errkind.InvalidUTF8, s.pos, "invalid UTF-8 transformed by policy"))
		return s.emitOwnedString(out), nil
	}
	return s.emitOwnedString(raw), nil
}

// emitOwnedString appends a string entry whose bytes live in the map's
// separate assembled buffer (chunk-reassembled or UTF-8/NUL-transformed
// strings, and the synthesized NaN/Inf strings under FloatAsString).
func (s *scanner) emitOwnedString(b []byte) int {
	off := len(s.assembled)
	s.assembled = append(s.assembled, b...)
	return s.appendEntry(Entry{
		Tag:     TagString,
		StrOff:  off,
		StrLen:  len(b),
		Chunked: true,
	})
}

func (s *scanner) stringBytes(e *Entry) []byte {
	if e.Chunked {
		return s.assembled[e.StrOff : e.StrOff+e.StrLen]
	}
	return s.input[e.StrOff : e.StrOff+e.StrLen]
}

// readBigNum reads a big-number entry (header byte + significand + exponent)
// and stores its raw span, leaving numeric decoding to the accessor.
func (s *scanner) readBigNum() (int, error) {
	start := s.pos
	if start+2 > len(s.input) {
		return 0, errkind.New(errkind.Truncated, start, "truncated big number header")
	}
	hdr := wire.DecodeBigNumHeader(s.input[start+1])
	if hdr.SignificandBytes > 8 {
		return 0, errkind.New(errkind.BigNumberOutOfRange, start, "big number significand exceeds 8 bytes")
	}
	if hdr.SignificandBytes == 0 && hdr.ExponentBytes != 0 {
		return 0, errkind.New(errkind.InvalidData, start, "reserved big-number sentinel form")
	}
	total := 1 /*type code*/ + 1 /*header*/ + hdr.SignificandBytes + hdr.ExponentBytes
	if start+total > len(s.input) {
		return 0, errkind.New(errkind.Truncated, start, "truncated big number body")
	}
	if hdr.ExponentBytes > 0 {
		expOff := start + 2 + hdr.SignificandBytes
		exp, _ := wire.DecodeSignedInt(s.input[expOff:expOff+hdr.ExponentBytes], hdr.ExponentBytes)
		if exp < -128 || exp > 127 {
			return 0, errkind.New(errkind.BigNumberOutOfRange, start, "big number exponent outside [-128,127]")
		}
	}
	s.pos = start + total
	return s.appendEntry(Entry{
		Tag:    TagBigNum,
		StrOff: start,
		StrLen: total,
	}), nil
}
