package provider

import (
	"context"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
)

// Sharded routes each key to exactly one of several backend Providers using
// rendezvous (highest random weight) hashing: adding or removing a backend
// only reshuffles the keys owned by that backend, unlike a naive mod-N
// router which reshuffles almost everything. This has no teacher analog --
// cascache always ran against a single Provider -- but gives the pack's
// previously-indirect go-rendezvous dependency a direct, real use.
type Sharded struct {
	backends map[string]Provider
	r        *rendezvous.Rendezvous
}

var _ Provider = (*Sharded)(nil)

// NewSharded builds a router over named backends. Names are arbitrary
// labels used only to pick a rendezvous node and look up its Provider; they
// never appear in a cache key.
func NewSharded(backends map[string]Provider) (*Sharded, error) {
	if len(backends) == 0 {
		return nil, errors.New("provider: sharded requires at least one backend")
	}
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return &Sharded{
		backends: backends,
		r:        rendezvous.New(names, xxhash.Sum64String),
	}, nil
}

func (s *Sharded) pick(key string) Provider {
	return s.backends[s.r.Lookup(key)]
}

func (s *Sharded) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.pick(key).Get(ctx, key)
}

func (s *Sharded) Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	return s.pick(key).Set(ctx, key, value, cost, ttl)
}

func (s *Sharded) Del(ctx context.Context, key string) error {
	return s.pick(key).Del(ctx, key)
}

// Close closes every backend, returning the first error encountered while
// still attempting to close the rest.
func (s *Sharded) Close(ctx context.Context) error {
	var first error
	for _, b := range s.backends {
		if err := b.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
