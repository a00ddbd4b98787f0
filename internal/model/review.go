package model

import "github.com/google/uuid"

const (
	// MaxRating is the highest rating a review can carry.
	MaxRating = 5.0
	// RatingStep is the granularity of ratings.
	RatingStep = 0.25
)

// Review is a rating with optional feedback attached to a product.
type Review struct {
	ID       string  `json:"id"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5,quarter"`
	Feedback string  `json:"feedback"`
	// Confirmed is set once the feedback has been committed.
	Confirmed bool `json:"confirmed"`
}

// NewReview returns an empty review with a freshly generated ID.
func NewReview() Review {
	return Review{ID: uuid.New().String()}
}
