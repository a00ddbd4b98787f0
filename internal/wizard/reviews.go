package wizard

import (
	"fmt"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/validation"
)

// ReviewPatch carries the review fields to change. Nil fields are left as they are.
type ReviewPatch struct {
	Rating   *float64
	Feedback *string
}

// ReviewEditor edits the ordered reviews of the product in the wizard.
// Ordinal numbers are positional and are not stored.
type ReviewEditor struct {
	reviews []model.Review
}

// NewReviewEditor starts editing a copy of the given reviews.
func NewReviewEditor(reviews []model.Review) *ReviewEditor {
	cp := make([]model.Review, len(reviews))
	copy(cp, reviews)
	return &ReviewEditor{reviews: cp}
}

// Reviews returns a copy of the current reviews.
func (e *ReviewEditor) Reviews() []model.Review {
	cp := make([]model.Review, len(e.reviews))
	copy(cp, e.reviews)
	return cp
}

// Len returns the number of reviews.
func (e *ReviewEditor) Len() int {
	return len(e.reviews)
}

// Add appends an empty review with a new ID.
func (e *ReviewEditor) Add() model.Review {
	r := model.NewReview()
	e.reviews = append(e.reviews, r)
	return r
}

// Update applies the patch to the review at index and reports whether anything changed.
func (e *ReviewEditor) Update(index int, patch ReviewPatch) (bool, error) {
	if err := e.checkIndex(index); err != nil {
		return false, err
	}
	updated := e.reviews[index]
	if patch.Rating != nil {
		updated.Rating = *patch.Rating
	}
	if patch.Feedback != nil {
		updated.Feedback = *patch.Feedback
	}
	if err := validation.Review(updated); err != nil {
		return false, err
	}
	changed := updated != e.reviews[index]
	e.reviews[index] = updated
	return changed, nil
}

// Confirm commits the feedback of the review at index.
// A confirmed review is shown as static text with an edit affordance.
func (e *ReviewEditor) Confirm(index int, feedback string) (bool, error) {
	if err := e.checkIndex(index); err != nil {
		return false, err
	}
	r := e.reviews[index]
	changed := r.Feedback != feedback || !r.Confirmed
	r.Feedback = feedback
	r.Confirmed = true
	e.reviews[index] = r
	return changed, nil
}

// Edit reopens the feedback of the review at index.
func (e *ReviewEditor) Edit(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.reviews[index].Confirmed = false
	return nil
}

// Remove deletes the review at index; later reviews shift left.
func (e *ReviewEditor) Remove(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.reviews = append(e.reviews[:index], e.reviews[index+1:]...)
	return nil
}

func (e *ReviewEditor) checkIndex(index int) error {
	if index < 0 || index >= len(e.reviews) {
		return fmt.Errorf("%w: index %d", ErrReviewNotFound, index)
	}
	return nil
}
