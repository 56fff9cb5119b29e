package validation

import (
	"net/url"
	"strconv"
)

// ReviewInput is the review form as submitted, trimmed
type ReviewInput struct {
	Rating  string `validate:"required,whole,atleast=1,atmost=5"`
	Comment string `validate:"required,max=1000"`
}

// Review is a validated review form
type Review struct {
	Rating  int
	Comment string
}

var reviewFields = []string{"rating", "comment"}

var reviewMessages = map[string]map[string]string{
	"Rating": {
		"required": "Rating is required",
		"whole":    "Rating must be a number",
		"atleast":  "Rating must be at least 1",
		"atmost":   "Rating must be at most 5",
	},
	"Comment": {
		"required": "Comment is required",
		"max":      "Comment must be less than 1000 characters",
	},
}

// ParseReview validates a review form
func ParseReview(form url.Values) (Review, error) {
	if !hasGroup(form, "review") {
		return Review{}, FieldErrors{`"review" is required`}.asAppError()
	}

	input := ReviewInput{
		Rating:  field(form, "review", "rating"),
		Comment: field(form, "review", "comment"),
	}

	errs := check(input, reviewMessages)
	errs = append(errs, unknownKeys(form, "review", reviewFields, "_method")...)
	if len(errs) > 0 {
		return Review{}, errs.asAppError()
	}

	rating, _ := strconv.Atoi(input.Rating)
	return Review{Rating: rating, Comment: input.Comment}, nil
}
