package entities

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the fixed listing categories
type Category string

const (
	CategoryTrending     Category = "trending"
	CategoryRooms        Category = "rooms"
	CategoryIconicCities Category = "iconic-cities"
	CategoryMountains    Category = "mountains"
	CategoryCastle       Category = "castle"
	CategoryPools        Category = "pools"
	CategoryCamping      Category = "camping"
	CategoryFarmhouse    Category = "farmhouse"
	CategoryArctic       Category = "arctic"
	CategoryBoats        Category = "boats"
	CategoryDeserts      Category = "deserts"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryTrending,
	CategoryRooms,
	CategoryIconicCities,
	CategoryMountains,
	CategoryCastle,
	CategoryPools,
	CategoryCamping,
	CategoryFarmhouse,
	CategoryArctic,
	CategoryBoats,
	CategoryDeserts,
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Image references a file held by the image store
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ThumbnailURL returns a 200px wide rendition of the image
func (i Image) ThumbnailURL() string {
	return strings.Replace(i.URL, "/upload", "/upload/w_200", 1)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Listing represents a rentable property
type Listing struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Price       float64      `json:"price" db:"price"`
	Location    string       `json:"location" db:"location"`
	Country     string       `json:"country" db:"country"`
	Category    Category     `json:"category" db:"category"`
	Image       Image        `json:"image"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ReviewIDs   []string     `json:"review_ids" db:"review_ids"`
	OwnerID     string       `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy reports whether userID owns the listing
func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

// Address is the free-text address sent to the geocoder
func (l *Listing) Address() string {
	return fmt.Sprintf("%s, %s", l.Location, l.Country)
}

// ListingFilter narrows the listing index
type ListingFilter struct {
	// Country is matched as a case-insensitive substring
	Country  string
	Category Category
}

// ListingDetail is a listing with its owner and reviews resolved
type ListingDetail struct {
	Listing *Listing        `json:"listing"`
	Owner   *User           `json:"owner,omitempty"`
	Reviews []*ReviewDetail `json:"reviews"`
}
