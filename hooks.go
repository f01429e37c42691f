package bonjson

import "github.com/kstenerud/go-bonjson/internal/obslog"

// Hooks are lightweight callbacks for high-signal codec events.
// Implementations MUST be cheap and non-blocking; do not perform I/O.
// If work may block, buffer it and drop on backpressure (best effort) --
// see hooks/async for a bounded-queue dispatcher.
type Hooks = obslog.Hooks

// NopHooks is a default no-op.
type NopHooks = obslog.NopHooks

// Multi returns a Hooks that fan-outs to all provided hooks, in order.
// Nil entries are ignored. Panics from a hook will propagate to the caller.
//
// example usage:
//
//	logH := sloghooks.New(slog.Default(), sloghooks.Options{})
//	metH := myMetricsHook{...}
//
//	// fan-out
//	mh := bonjson.Multi(logH, metH)
//
//	// single async queue for the whole fan-out
//	hooks := asynchook.New(mh, 1, 1000)
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) Encoded(n, depth int) {
	for _, h := range m {
		h.Encoded(n, depth)
	}
}
func (m multiHooks) Decoded(n, entries int) {
	for _, h := range m {
		h.Decoded(n, entries)
	}
}
func (m multiHooks) CacheHit(key string) {
	for _, h := range m {
		h.CacheHit(key)
	}
}
func (m multiHooks) CacheMiss(key string) {
	for _, h := range m {
		h.CacheMiss(key)
	}
}
func (m multiHooks) PolicyViolation(kind ErrorKind, offset int) {
	for _, h := range m {
		h.PolicyViolation(kind, offset)
	}
}
func (m multiHooks) LimitExceeded(kind ErrorKind) {
	for _, h := range m {
		h.LimitExceeded(kind)
	}
}
