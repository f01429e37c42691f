package posmap

import (
	"sync"

	"go.uber.org/multierr"
)

// Map is the position-map produced by Scan: a dense, preorder entry table
// plus an owned copy of the input bytes so string views handed to callers
// remain valid for the map's lifetime (spec.md §3, "Ownership").
//
// Map is read-only after Scan returns, except for the per-object key->index
// lookup cache, which is populated lazily and exactly once per object
// (spec.md §5): concurrent readers that never trigger cache creation need no
// synchronization; readers that do are serialized per object via sync.Once,
// grounded on genstore/local.go's lazy-init-under-lock idiom.
type Map struct {
	entries  []Entry
	input    []byte // owned copy of the scanned bytes
	assembled []byte // owned buffer for chunk-reassembled / UTF-8-transformed strings

	keyCaches []keyCache // one slot per TagObject entry index, sparse
	warnings  error      // accumulated via multierr for lenient-policy decodes
}

type keyCache struct {
	once  sync.Once
	index map[string]int // key bytes -> value entry index
}

// Root returns the index of the root entry (always 0 for a non-empty map).
func (m *Map) Root() int { return 0 }

// Len returns the total number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Warnings returns the combined non-fatal diagnostics accumulated while
// scanning under a lenient policy (UTF-8 replace/delete, float allow), or
// nil if there were none.
func (m *Map) Warnings() error { return m.warnings }

func (m *Map) addWarning(err error) {
	m.warnings = multierr.Append(m.warnings, err)
}

func (m *Map) entry(i int) *Entry { return &m.entries[i] }
