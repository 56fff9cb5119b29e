package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

const (
	nominatimSearchURL = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent   = "Wanderlust-App/1.0"
	defaultHTTPTimeout = 8 * time.Second
)

// NominatimProvider implements the GeolocationProvider using OpenStreetMap Nominatim
type NominatimProvider struct {
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
	userAgent  string
}

// NewNominatimProvider creates a new Nominatim geocoder
func NewNominatimProvider(userAgent string, cache providers.CacheProvider) *NominatimProvider {
	return NewNominatimProviderWithOptions(userAgent, cache, "", nil)
}

// NewNominatimProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimProviderWithOptions(userAgent string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) *NominatimProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimSearchURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves address to the best matching place
func (n *NominatimProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := geocodeCacheKey("nominatim", trimmed)
	if addr, ok := cachedAddress(ctx, n.cache, cacheKey); ok {
		return addr, nil
	}

	params := url.Values{
		"q":      []string{trimmed},
		"format": []string{"json"},
		"limit":  []string{"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no results for address")
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	addr := &providers.GeocodedAddress{
		FormattedAddress: places[0].DisplayName,
		Coordinates:      entities.Coordinates{Latitude: lat, Longitude: lon},
	}
	storeAddress(ctx, n.cache, cacheKey, addr)

	return addr, nil
}
