package providers

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// GeolocationProvider defines the interface for geocoding services
type GeolocationProvider interface {
	// Geocode converts a free-text address to coordinates
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string
	Coordinates      entities.Coordinates
}
