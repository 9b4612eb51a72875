package gateway

import (
	"context"
	"sync"

	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/toolkit"
	"go.uber.org/zap"
)

// Factory builds a toolkit client for a credential from the configuration
// current at construction time.
type Factory interface {
	NewClient(ctx context.Context, credential string, cfg *config.Config) (toolkit.Toolkit, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, credential string, cfg *config.Config) (toolkit.Toolkit, error)

// NewClient calls f.
func (f FactoryFunc) NewClient(ctx context.Context, credential string, cfg *config.Config) (toolkit.Toolkit, error) {
	return f(ctx, credential, cfg)
}

// AgentkitFactory builds EVM-backed toolkit clients.
func AgentkitFactory() Factory {
	return FactoryFunc(func(ctx context.Context, credential string, cfg *config.Config) (toolkit.Toolkit, error) {
		opts, err := toolkit.OptionsFromConfig(cfg, credential)
		if err != nil {
			return nil, err
		}
		return toolkit.ConfigureWithWallet(ctx, opts)
	})
}

type cacheEntry struct {
	credential string
	client     toolkit.Toolkit
	registry   *toolkit.Registry
	leases     int
	evicted    bool
}

// Lease is a caller's hold on a cached client. An evicted client is closed
// once every lease on it has been released.
type Lease struct {
	cache *ClientCache
	entry *cacheEntry
	once  sync.Once
}

// Client returns the leased client.
func (l *Lease) Client() toolkit.Toolkit { return l.entry.client }

// Registry returns the action registry of the leased client.
func (l *Lease) Registry() *toolkit.Registry { return l.entry.registry }

// Release gives the lease back. It is safe to call more than once.
func (l *Lease) Release() {
	l.once.Do(func() { l.cache.release(l.entry) })
}

// Stats counts cache activity.
type Stats struct {
	Constructions uint64
	Hits          uint64
	Evictions     uint64
}

// ClientCache holds at most one client, keyed by the credential it was built
// for. Lookups, construction and replacement all happen under one mutex, so
// a caller never receives a client built for another credential.
type ClientCache struct {
	mu      sync.Mutex
	source  config.Source
	factory Factory
	current *cacheEntry
	stats   Stats
}

// NewClientCache returns an empty cache.
func NewClientCache(source config.Source, factory Factory) *ClientCache {
	if factory == nil {
		factory = AgentkitFactory()
	}
	return &ClientCache{source: source, factory: factory}
}

// ObtainClient returns a lease on the client for credential, reusing the
// cached one when the credential matches and building a replacement
// otherwise. A failed construction leaves the cached client in place.
// Failures are *Error of KindConfiguration or KindClientConstruction.
func (c *ClientCache) ObtainClient(ctx context.Context, credential string) (*Lease, error) {
	var stale toolkit.Toolkit
	defer func() {
		if stale != nil {
			stale.Close()
		}
	}()
	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.current; e != nil && e.credential == credential {
		c.stats.Hits++
		e.leases++
		return &Lease{cache: c, entry: e}, nil
	}

	cfg, err := c.source.Load()
	if err != nil {
		zap.L().Warn("configuration incomplete", zap.Error(err))
		return nil, newError(KindConfiguration, err, "Error: %s", errorDetails(err))
	}

	fp := blockchain.Fingerprint(credential)
	client, err := c.factory.NewClient(ctx, credential, cfg)
	if err != nil {
		zap.L().Error("toolkit client construction failed", zap.String("fingerprint", fp), zap.Error(err))
		return nil, newError(KindClientConstruction, err, "Error: %s", errorDetails(err))
	}
	registry, err := toolkit.NewRegistry(client.Tools())
	if err != nil {
		client.Close()
		return nil, newError(KindClientConstruction, err, "Error: %s", errorDetails(err))
	}
	c.stats.Constructions++

	if old := c.current; old != nil {
		stale = c.evictLocked(old)
	}
	e := &cacheEntry{credential: credential, client: client, registry: registry, leases: 1}
	c.current = e

	zap.L().Info("toolkit client constructed",
		zap.String("fingerprint", fp),
		zap.String("network", cfg.Network.Name),
		zap.Strings("actions", registry.Names()))
	return &Lease{cache: c, entry: e}, nil
}

// evictLocked marks e evicted and returns its client when nobody holds it.
func (c *ClientCache) evictLocked(e *cacheEntry) toolkit.Toolkit {
	e.evicted = true
	c.stats.Evictions++
	zap.L().Debug("toolkit client evicted",
		zap.String("fingerprint", blockchain.Fingerprint(e.credential)),
		zap.Int("leases", e.leases))
	if e.leases == 0 {
		return e.client
	}
	return nil
}

func (c *ClientCache) release(e *cacheEntry) {
	c.mu.Lock()
	e.leases--
	closeNow := e.evicted && e.leases == 0
	c.mu.Unlock()
	if closeNow {
		e.client.Close()
	}
}

// Purge drops the cached client. It is closed once released.
func (c *ClientCache) Purge() {
	var stale toolkit.Toolkit
	c.mu.Lock()
	if c.current != nil {
		stale = c.evictLocked(c.current)
		c.current = nil
	}
	c.mu.Unlock()
	if stale != nil {
		stale.Close()
	}
}

// Stats returns a snapshot of the counters.
func (c *ClientCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
