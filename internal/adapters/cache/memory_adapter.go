package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

// MemoryAdapter is an in-process CacheProvider used when Redis is disabled.
// A background janitor drops expired entries whether or not they are read.
type MemoryAdapter struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryAdapter creates an empty in-memory cache and starts its janitor
func NewMemoryAdapter() *MemoryAdapter {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &MemoryAdapter{items: items}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache
func (m *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, providers.ErrCacheMiss
	}
	return append([]byte(nil), item.Value()...), nil
}

// Set stores a value; zero or negative expiration keeps it until deleted
func (m *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := ttlcache.NoTTL
	if expirationSeconds > 0 {
		ttl = time.Duration(expirationSeconds) * time.Second
	}
	m.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a value from cache
func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Close stops the janitor
func (m *MemoryAdapter) Close() {
	m.items.Stop()
}
