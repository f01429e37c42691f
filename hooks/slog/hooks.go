// Package sloghooks adapts bonjson.Hooks events to log/slog, with sampling
// for the high-frequency Encoded/Decoded events so a hot codec path doesn't
// flood the log.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/kstenerud/go-bonjson"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	EncodedEvery uint64
	DecodedEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	encodedCtr atomic.Uint64
	decodedCtr atomic.Uint64
}

var _ bonjson.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Encoded(byteLen, depth int) {
	if h.l == nil || !sample(h.opts.EncodedEvery, &h.encodedCtr) {
		return
	}
	h.l.Debug("bonjson.encoded", "bytes", byteLen, "depth", depth)
}

func (h *Hooks) Decoded(byteLen, entryCount int) {
	if h.l == nil || !sample(h.opts.DecodedEvery, &h.decodedCtr) {
		return
	}
	h.l.Debug("bonjson.decoded", "bytes", byteLen, "entries", entryCount)
}

func (h *Hooks) CacheHit(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("bonjson.scancache_hit", "key", key)
}

func (h *Hooks) CacheMiss(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("bonjson.scancache_miss", "key", key)
}

func (h *Hooks) PolicyViolation(kind bonjson.ErrorKind, offset int) {
	if h.l == nil {
		return
	}
	h.l.Warn("bonjson.policy_violation", "kind", string(kind), "offset", offset)
}

func (h *Hooks) LimitExceeded(kind bonjson.ErrorKind) {
	if h.l == nil {
		return
	}
	h.l.Warn("bonjson.limit_exceeded", "kind", string(kind))
}
