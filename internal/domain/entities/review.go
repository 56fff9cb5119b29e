package entities

import "time"

// Review is a user's rating of a listing
type Review struct {
	ID        string    `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Comment   string    `json:"comment" db:"comment"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsAuthoredBy reports whether userID wrote the review
func (r *Review) IsAuthoredBy(userID string) bool {
	return userID != "" && r.AuthorID == userID
}

// ReviewDetail is a review with its author resolved
type ReviewDetail struct {
	Review *Review `json:"review"`
	Author *User   `json:"author,omitempty"`
}
