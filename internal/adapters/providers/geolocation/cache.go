package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

// geocodeCacheTTL is in seconds
const geocodeCacheTTL = 60 * 60 * 24 * 30

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func geocodeCacheKey(provider, address string) string {
	return "geo:" + provider + ":geocode:" + hashKey(strings.ToLower(address))
}

func cachedAddress(ctx context.Context, cache providers.CacheProvider, key string) (*providers.GeocodedAddress, bool) {
	if cache == nil {
		return nil, false
	}
	cached, err := cache.Get(ctx, key)
	if err != nil || len(cached) == 0 {
		return nil, false
	}
	var addr providers.GeocodedAddress
	if err := json.Unmarshal(cached, &addr); err != nil {
		return nil, false
	}
	return &addr, true
}

func storeAddress(ctx context.Context, cache providers.CacheProvider, key string, addr *providers.GeocodedAddress) {
	if cache == nil {
		return
	}
	if payload, err := json.Marshal(addr); err == nil {
		_ = cache.Set(ctx, key, payload, geocodeCacheTTL)
	}
}
