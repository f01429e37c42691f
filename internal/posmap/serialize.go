package posmap

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cache-entry framing for a scanned Map, distinct from the BONJSON wire
// format itself: a small magic/version/entry-count header in the style of
// cascache's internal/wire.go (EncodeSingle/DecodeSingle), followed by a
// flat dump of the entry table and the map's two owned byte buffers.
//
// Only structural data is framed. Warnings accumulated under a lenient
// policy (spec.md §4.8) are not part of the cache entry: a cache hit is
// meant to be indistinguishable from a fresh Scan of the same bytes for
// every purpose an accessor cares about, and warnings are a one-shot
// diagnostic a caller is expected to have already consumed at scan time.
const (
	cacheMagic   = "BJPM" // BONJSON Position Map
	cacheVersion = 1
)

const entryRecordSize = 1 + 8 + 8 + 8 + 4 + 4 + 1 + 4 + 4 + 4 + 1

// Serialize encodes the map's entry table and owned buffers into a
// self-contained blob suitable for storage in a scancache.Provider. The
// blob has no relationship to the original BONJSON document bytes other
// than containing a copy of them.
func (m *Map) Serialize() []byte {
	size := len(cacheMagic) + 1 + 4 + len(m.entries)*entryRecordSize +
		4 + len(m.input) + 4 + len(m.assembled)
	buf := make([]byte, size)
	off := 0

	off += copy(buf[off:], cacheMagic)
	buf[off] = cacheVersion
	off++
	binary.BigEndian.PutUint32(buf[off:], uint32(len(m.entries)))
	off += 4

	for _, e := range m.entries {
		off += putEntry(buf[off:], e)
	}

	off += putBlob(buf[off:], m.input)
	off += putBlob(buf[off:], m.assembled)

	return buf[:off]
}

func putEntry(dst []byte, e Entry) int {
	off := 0
	dst[off] = byte(e.Tag)
	off++
	binary.BigEndian.PutUint64(dst[off:], uint64(e.I64))
	off += 8
	binary.BigEndian.PutUint64(dst[off:], e.U64)
	off += 8
	binary.BigEndian.PutUint64(dst[off:], math.Float64bits(e.F64))
	off += 8
	binary.BigEndian.PutUint32(dst[off:], uint32(e.StrOff))
	off += 4
	binary.BigEndian.PutUint32(dst[off:], uint32(e.StrLen))
	off += 4
	dst[off] = boolByte(e.Chunked)
	off++
	binary.BigEndian.PutUint32(dst[off:], uint32(e.FirstChild))
	off += 4
	binary.BigEndian.PutUint32(dst[off:], uint32(e.ChildCount))
	off += 4
	binary.BigEndian.PutUint32(dst[off:], uint32(e.NextSibling))
	off += 4
	dst[off] = boolByte(e.inert)
	off++
	return off
}

func getEntry(src []byte) Entry {
	var e Entry
	off := 0
	e.Tag = Tag(src[off])
	off++
	e.I64 = int64(binary.BigEndian.Uint64(src[off:]))
	off += 8
	e.U64 = binary.BigEndian.Uint64(src[off:])
	off += 8
	e.F64 = math.Float64frombits(binary.BigEndian.Uint64(src[off:]))
	off += 8
	e.StrOff = int(int32(binary.BigEndian.Uint32(src[off:])))
	off += 4
	e.StrLen = int(int32(binary.BigEndian.Uint32(src[off:])))
	off += 4
	e.Chunked = src[off] != 0
	off++
	e.FirstChild = int(int32(binary.BigEndian.Uint32(src[off:])))
	off += 4
	e.ChildCount = int(int32(binary.BigEndian.Uint32(src[off:])))
	off += 4
	e.NextSibling = int(int32(binary.BigEndian.Uint32(src[off:])))
	off += 4
	e.inert = src[off] != 0
	off++
	return e
}

func putBlob(dst []byte, b []byte) int {
	binary.BigEndian.PutUint32(dst, uint32(len(b)))
	n := copy(dst[4:], b)
	return 4 + n
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Deserialize reconstructs a Map from the output of Serialize. It validates
// the header and declared lengths but, like the scanner, never panics on
// corrupt input -- length mismatches are surfaced as errors so a cache
// consumer can treat them the same way it treats a provider miss.
func Deserialize(b []byte) (*Map, error) {
	if len(b) < len(cacheMagic)+1+4 {
		return nil, fmt.Errorf("posmap: cache entry truncated")
	}
	off := 0
	if string(b[off:off+len(cacheMagic)]) != cacheMagic {
		return nil, fmt.Errorf("posmap: cache entry bad magic")
	}
	off += len(cacheMagic)
	if b[off] != cacheVersion {
		return nil, fmt.Errorf("posmap: cache entry unsupported version %d", b[off])
	}
	off++
	count := int(binary.BigEndian.Uint32(b[off:]))
	off += 4

	if off+count*entryRecordSize > len(b) {
		return nil, fmt.Errorf("posmap: cache entry truncated entry table")
	}
	entries := make([]Entry, count)
	for i := 0; i < count; i++ {
		entries[i] = getEntry(b[off:])
		off += entryRecordSize
	}

	input, n, err := getBlob(b[off:])
	if err != nil {
		return nil, err
	}
	off += n

	assembled, n, err := getBlob(b[off:])
	if err != nil {
		return nil, err
	}
	off += n

	if off != len(b) {
		return nil, fmt.Errorf("posmap: cache entry has trailing bytes")
	}

	return &Map{
		entries:   entries,
		input:     input,
		assembled: assembled,
		keyCaches: make([]keyCache, count),
	}, nil
}

func getBlob(b []byte) ([]byte, int, error) {
	if len(b) < 4 {
		return nil, 0, fmt.Errorf("posmap: cache entry truncated blob length")
	}
	n := int(binary.BigEndian.Uint32(b))
	if 4+n > len(b) {
		return nil, 0, fmt.Errorf("posmap: cache entry truncated blob")
	}
	out := make([]byte, n)
	copy(out, b[4:4+n])
	return out, 4 + n, nil
}
