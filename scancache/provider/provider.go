// Package provider defines the storage abstraction used by scancache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal
// transforms (e.g. compression), they MUST be fully reversed so the bytes
// returned by Get are identical to the bytes given to Set -- scancache relies
// on this to hand the blob straight to bonjson.DecodeSerialized.
//
// This is the teacher's provider.Provider contract carried over unchanged in
// shape: a scanned position map is just another byte-for-byte value to a
// store that doesn't know or care what's inside it.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent
// use and must be byte-for-byte transparent (see package doc).
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
