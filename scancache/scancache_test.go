package scancache

import (
	"context"
	"sync"
	"time"

	"testing"

	"github.com/kstenerud/go-bonjson"
	"github.com/kstenerud/go-bonjson/scancache/provider"
)

// memProvider is a trivial in-memory provider.Provider fake, enough to
// exercise Cache's Get/Put/GetOrScan/Invalidate without a real backend.
type memProvider struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemProvider() *memProvider { return &memProvider{data: make(map[string][]byte)} }

func (p *memProvider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.data[key]
	return v, ok, nil
}

func (p *memProvider) Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = append([]byte(nil), value...)
	return true, nil
}

func (p *memProvider) Del(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key)
	return nil
}

func (p *memProvider) Close(ctx context.Context) error { return nil }

var _ provider.Provider = (*memProvider)(nil)

func newTestCache(t *testing.T) (*Cache, *memProvider) {
	t.Helper()
	mp := newMemProvider()
	c, err := New(Options{Namespace: "test", Provider: mp})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, mp
}

func TestGetOrScanMissThenHit(t *testing.T) {
	c, mp := newTestCache(t)
	ctx := context.Background()
	doc, err := bonjson.Encode(bonjson.Object(bonjson.Pair{Key: "a", Value: bonjson.Int(1)}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	m1, err := c.GetOrScan(ctx, doc, 0)
	if err != nil {
		t.Fatalf("GetOrScan (miss): %v", err)
	}
	if len(mp.data) != 1 {
		t.Fatalf("expected exactly one stored entry after a miss, got %d", len(mp.data))
	}

	m2, ok, err := c.Get(ctx, doc)
	if err != nil || !ok {
		t.Fatalf("Get (hit): ok=%v err=%v", ok, err)
	}
	if m1.Len() != m2.Len() {
		t.Fatalf("hit Map should match the originally scanned Map: %d vs %d", m1.Len(), m2.Len())
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	doc, err := bonjson.Encode(bonjson.Int(42))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := c.GetOrScan(ctx, doc, 0); err != nil {
		t.Fatalf("GetOrScan: %v", err)
	}
	if err := c.Invalidate(ctx, doc); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, err := c.Get(ctx, doc); err != nil || ok {
		t.Fatalf("expected miss after invalidate: ok=%v err=%v", ok, err)
	}
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	if _, ok, err := c.Get(ctx, []byte("anything")); err != nil || ok {
		t.Fatalf("expected clean miss: ok=%v err=%v", ok, err)
	}
}

func TestNewRequiresProviderAndNamespace(t *testing.T) {
	if _, err := New(Options{Namespace: "ns"}); err == nil {
		t.Fatalf("expected error without a Provider")
	}
	if _, err := New(Options{Provider: newMemProvider()}); err == nil {
		t.Fatalf("expected error without a Namespace")
	}
}
