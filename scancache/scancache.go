// Package scancache is a content-addressed cache of already-scanned
// bonjson.Maps, grounded on the teacher's provider.Provider abstraction and
// cache.go's overall shape, repurposed: a position map is a pure function
// of its input bytes (and the Policies/Limits a document was scanned
// under), so there is no CAS/generation-invalidation problem to solve here
// -- entries are immutable and keyed by content, so the teacher's
// genstore/cas.go generation machinery has no analog (dropped; see
// DESIGN.md).
package scancache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kstenerud/go-bonjson"
	"github.com/kstenerud/go-bonjson/internal/util"
	"github.com/kstenerud/go-bonjson/scancache/provider"
)

// Logger mirrors bonjson.Logger so scancache doesn't force a root-package
// import cycle on its callers; a *bonjson.Logger value satisfies it as-is.
type Logger = bonjson.Logger

// Fields mirrors bonjson.Fields.
type Fields = bonjson.Fields

// Cache wraps a provider.Provider, keying entries by the sha256 content
// hash of the scanned document bytes.
type Cache struct {
	namespace  string
	provider   provider.Provider
	policies   bonjson.Policies
	limits     bonjson.Limits
	defaultTTL time.Duration
	log        Logger
	hooks      bonjson.Hooks
}

// Options configures a Cache. Namespace and Provider are required;
// Policies/Limits default to bonjson.DefaultPolicies()/DefaultLimits() when
// zero-valued, matching Decode's own defaulting.
type Options struct {
	Namespace  string
	Provider   provider.Provider
	Policies   bonjson.Policies
	Limits     bonjson.Limits
	DefaultTTL time.Duration
	Logger     Logger
	Hooks      bonjson.Hooks
}

// New constructs a Cache. Every document scanned through a given Cache is
// scanned under the same Policies/Limits, which are folded into the
// namespace so a cache misconfigured with two different policy sets for
// the same Provider can never serve a result scanned under the wrong one.
func New(opts Options) (*Cache, error) {
	if opts.Provider == nil {
		return nil, errors.New("scancache: provider is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("scancache: namespace is required")
	}
	c := &Cache{
		namespace:  fmt.Sprintf("%s|%v|%v", opts.Namespace, opts.Policies, opts.Limits),
		provider:   opts.Provider,
		policies:   opts.Policies,
		limits:     opts.Limits,
		defaultTTL: coalesceDuration(opts.DefaultTTL, 10*time.Minute),
		log:        coalesceLogger(opts.Logger),
		hooks:      coalesceHooks(opts.Hooks),
	}
	return c, nil
}

// Close releases the underlying provider's resources.
func (c *Cache) Close(ctx context.Context) error { return c.provider.Close(ctx) }

func (c *Cache) key(content []byte) string {
	return util.ContentKey(c.namespace, content)
}

// Get returns a cached scan of content, or (nil, false, nil) on a miss. A
// corrupt cache entry (wrong magic/version, truncated, or any other
// Deserialize failure) is treated as a miss after best-effort eviction of
// the bad entry, the same self-healing pattern the teacher's providers use
// for a type-mismatched value.
func (c *Cache) Get(ctx context.Context, content []byte) (*bonjson.Map, bool, error) {
	k := c.key(content)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		c.hooks.CacheMiss(k)
		return nil, false, nil
	}
	m, err := bonjson.DecodeSerialized(raw)
	if err != nil {
		c.log.Warn("scancache: corrupt entry, evicting", Fields{"key": k, "err": err.Error()})
		_ = c.provider.Del(ctx, k)
		c.hooks.CacheMiss(k)
		return nil, false, nil
	}
	c.hooks.CacheHit(k)
	return m, true, nil
}

// GetOrScan returns a cached scan of content if present, otherwise scans it
// under the Cache's Policies/Limits, stores the result with ttl (or the
// Cache's DefaultTTL if ttl is 0), and returns it. The returned Map owns its
// own copy of the document bytes; it does not alias the caller's content
// slice.
func (c *Cache) GetOrScan(ctx context.Context, content []byte, ttl time.Duration) (*bonjson.Map, error) {
	if m, ok, err := c.Get(ctx, content); err != nil {
		return nil, err
	} else if ok {
		return m, nil
	}

	m, err := bonjson.Decode(content, c.policies, c.limits)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, content, m, ttl); err != nil {
		c.log.Warn("scancache: put failed after scan", Fields{"err": err.Error()})
	}
	return m, nil
}

// Put stores a previously-scanned Map under content's key.
func (c *Cache) Put(ctx context.Context, content []byte, m *bonjson.Map, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	k := c.key(content)
	blob := m.Serialize()
	ok, err := c.provider.Set(ctx, k, blob, int64(len(blob)), ttl)
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug("scancache: put rejected by provider (pressure)", Fields{"key": k})
	}
	return nil
}

// Invalidate evicts content's entry, if any.
func (c *Cache) Invalidate(ctx context.Context, content []byte) error {
	return c.provider.Del(ctx, c.key(content))
}

func coalesceDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func coalesceLogger(l Logger) Logger {
	if l == nil {
		return bonjson.NopLogger{}
	}
	return l
}

func coalesceHooks(h bonjson.Hooks) bonjson.Hooks {
	if h == nil {
		return bonjson.NopHooks{}
	}
	return h
}
