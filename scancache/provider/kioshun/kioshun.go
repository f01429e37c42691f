// Package kioshun adapts github.com/unkn0wn-root/kioshun to
// scancache/provider.Provider, grounded on the teacher's own kioshun
// provider.
package kioshun

import (
	"context"
	"time"

	pr "github.com/kstenerud/go-bonjson/scancache/provider"
	kc "github.com/unkn0wn-root/kioshun"
)

// K=string, V=[]byte satisfies the byte-for-byte transparent contract.
type Kioshun struct {
	c *kc.InMemoryCache[string, []byte]
}

var _ pr.Provider = (*Kioshun)(nil)

type Config struct {
	MaxItems               int64             // total item capacity; 0 = unlimited
	ShardCount             int               // 0 = auto (CPU * multiplier)
	Policy                 kc.EvictionPolicy // LRU/LFU/FIFO/AdmissionLFU
	CleanupInterval        time.Duration     // 0 = disable background cleanup
	AdmissionResetInterval time.Duration     // only used by AdmissionLFU
	StatsEnabled           bool
}

// New forces DefaultTTL=0 in kioshun so the per-call TTL from Set is
// authoritative; scancache always passes an explicit TTL.
func New(cfg Config) *Kioshun {
	kcfg := kc.Config{
		MaxSize:                cfg.MaxItems,
		ShardCount:             cfg.ShardCount,
		CleanupInterval:        cfg.CleanupInterval,
		DefaultTTL:             0,
		EvictionPolicy:         cfg.Policy,
		StatsEnabled:           cfg.StatsEnabled,
		AdmissionResetInterval: cfg.AdmissionResetInterval,
	}
	return &Kioshun{c: kc.New[string, []byte](kcfg)}
}

func NewWithCache(c *kc.InMemoryCache[string, []byte]) *Kioshun { return &Kioshun{c: c} }

func (p *Kioshun) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set's (ok) result tracks admission: for new keys rejected under pressure
// (AdmissionLFU), Exists() is false after the call; updates to an existing
// key remain true.
func (p *Kioshun) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = kc.NoExpiration
	}
	if err := p.c.Set(key, value, ttl); err != nil {
		return false, err
	}
	return p.c.Exists(key), nil
}

func (p *Kioshun) Del(_ context.Context, key string) error {
	_ = p.c.Delete(key)
	return nil
}

func (p *Kioshun) Close(_ context.Context) error {
	return p.c.Close()
}
