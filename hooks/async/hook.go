// Package asynchook wraps a bonjson.Hooks in a bounded queue and a fixed
// worker pool, so that a slow or blocking inner implementation never adds
// latency to the encode/decode path that fired the event.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	m, err := bonjson.Decode(data, policies, limits)
//	hooks.Decoded(len(data), m.Len())
package asynchook

import (
	"sync"

	"github.com/kstenerud/go-bonjson"
)

type Hooks struct {
	inner bonjson.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ bonjson.Hooks = (*Hooks)(nil)

func New(inner bonjson.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Encoded(n, depth int) { h.try(func() { h.inner.Encoded(n, depth) }) }
func (h *Hooks) Decoded(n, entries int) {
	h.try(func() { h.inner.Decoded(n, entries) })
}
func (h *Hooks) CacheHit(key string)  { h.try(func() { h.inner.CacheHit(key) }) }
func (h *Hooks) CacheMiss(key string) { h.try(func() { h.inner.CacheMiss(key) }) }
func (h *Hooks) PolicyViolation(kind bonjson.ErrorKind, offset int) {
	h.try(func() { h.inner.PolicyViolation(kind, offset) })
}
func (h *Hooks) LimitExceeded(kind bonjson.ErrorKind) {
	h.try(func() { h.inner.LimitExceeded(kind) })
}
