package geolocation

import (
	"strings"

	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

// NewProvider selects a geocoder from configuration. Unknown providers and a
// Google provider without an API key fall back to Nominatim.
func NewProvider(cfg config.GeolocationConfig, cache providers.CacheProvider) providers.GeolocationProvider {
	switch strings.ToLower(cfg.Provider) {
	case "mock":
		return NewMockGeolocationProvider()
	case "google":
		if cfg.APIKey != "" {
			return NewGoogleGeolocationProviderWithOptions(cfg.APIKey, cache, cfg.BaseURL, nil)
		}
	}
	return NewNominatimProviderWithOptions(cfg.UserAgent, cache, cfg.BaseURL, nil)
}
