package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// ListingInput is the listing form as submitted, trimmed
type ListingInput struct {
	Title       string `validate:"required,max=100,title_chars,not_digits,has_letter"`
	Description string `validate:"required,max=1000"`
	Price       string `validate:"required,decimal,positive,cents,price_cap"`
	Location    string `validate:"required,max=100,location_chars,not_digits,has_letter"`
	Country     string `validate:"required,max=100,country_chars"`
	Category    string `validate:"required,category"`
}

var listingFields = []string{"title", "description", "price", "location", "country", "category", "image"}

var listingMessages = map[string]map[string]string{
	"Title": {
		"required":    "Title is required",
		"max":         "Title must be less than 100 characters",
		"title_chars": "Title can contain letters, numbers, spaces, and common punctuation",
		"not_digits":  "Title cannot be just numbers - must describe the property",
		"has_letter":  "Title must contain at least some letters to describe the property",
	},
	"Description": {
		"required": "Description is required",
		"max":      "Description must be less than 1000 characters",
	},
	"Price": {
		"required":  "Price is required",
		"decimal":   "Price must be a valid number",
		"positive":  "Price must be a positive number",
		"cents":     "Price must have no more than 2 decimal places",
		"price_cap": "Price must be less than 10000000000",
	},
	"Location": {
		"required":       "Location is required",
		"max":            "Location must be less than 100 characters",
		"location_chars": "Location can contain letters, numbers, spaces, hyphens, apostrophes, commas, periods, # and /",
		"not_digits":     "Location cannot be just numbers - must include street name or area",
		"has_letter":     "Location must contain at least some letters",
	},
	"Country": {
		"required":      "Country is required",
		"max":           "Country must be less than 100 characters",
		"country_chars": "Country must contain only letters, spaces, hyphens, apostrophes, commas, and periods",
	},
	"Category": {
		"required": `"listing.category" is required`,
		"category": fmt.Sprintf(`"listing.category" must be one of [%s]`, categoryList()),
	},
}

func categoryList() string {
	names := make([]string, len(entities.Categories))
	for i, c := range entities.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// ParseListing validates a listing form. Create and update share the field
// set; the image file is checked separately.
func ParseListing(form url.Values) (services.ListingFields, error) {
	if !hasGroup(form, "listing") {
		return services.ListingFields{}, FieldErrors{`"listing" is required`}.asAppError()
	}

	input := ListingInput{
		Title:       field(form, "listing", "title"),
		Description: field(form, "listing", "description"),
		Price:       field(form, "listing", "price"),
		Location:    field(form, "listing", "location"),
		Country:     field(form, "listing", "country"),
		Category:    field(form, "listing", "category"),
	}

	errs := check(input, listingMessages)
	errs = append(errs, unknownKeys(form, "listing", listingFields, "_method")...)
	if len(errs) > 0 {
		return services.ListingFields{}, errs.asAppError()
	}

	price, _ := parseNumber(input.Price)
	return services.ListingFields{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Location:    input.Location,
		Country:     input.Country,
		Category:    entities.Category(input.Category),
	}, nil
}
