package wizard

import (
	"errors"
	"fmt"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/validation"
)

var (
	// ErrNotFinalStep is returned when submitting from any step but the last.
	ErrNotFinalStep = errors.New("wizard can only be submitted from the reviews step")
	// ErrConfirmationRequired is returned when discarding modified data without confirmation.
	ErrConfirmationRequired = errors.New("discarding changes requires confirmation")
	// ErrReviewNotFound is returned for a review index outside the review list.
	ErrReviewNotFound = errors.New("review not found")
	// ErrClosed is returned for any operation on a submitted or discarded wizard.
	ErrClosed = errors.New("wizard is closed")
)

// Wizard walks a product through the details, specification and reviews steps.
// It is not safe for concurrent use.
type Wizard struct {
	state   State
	draft   draft
	reviews *ReviewEditor
	closed  bool
}

// Open starts a wizard on a copy of existing, or on an empty product when existing is nil.
func Open(existing *model.Product) *Wizard {
	var reviews []model.Review
	if existing != nil {
		reviews = existing.Reviews
	}
	return &Wizard{
		state:   NewState(),
		draft:   newDraft(existing),
		reviews: NewReviewEditor(reviews),
	}
}

// State returns the navigation state.
func (w *Wizard) State() State {
	return w.state
}

// Closed reports whether the wizard was submitted or discarded.
func (w *Wizard) Closed() bool {
	return w.closed
}

// IsUpdate reports whether the wizard edits a product that already exists in the store.
func (w *Wizard) IsUpdate() bool {
	return !w.draft.product.IsNew()
}

// Product returns the product as it would be saved now: only the block of
// the selected category is kept.
func (w *Wizard) Product() *model.Product {
	p := w.draft.product.Clone()
	p.Spec = w.draft.spec()
	p.Reviews = w.reviews.Reviews()
	return p
}

// Specs returns every category block held by the wizard, including those of
// non-selected categories.
func (w *Wizard) Specs() map[model.Category]model.Spec {
	return w.draft.specs()
}

// Reviews returns the reviews being edited.
func (w *Wizard) Reviews() []model.Review {
	return w.reviews.Reviews()
}

// Validate checks the fields of a step against the draft.
func (w *Wizard) Validate(step Step) error {
	switch step {
	case StepDetails:
		return validation.Details(&w.draft.product)
	case StepSpecification:
		return validation.Specification(w.draft.product.Category, w.draft.spec())
	}
	// reviews are optional; ratings are checked as they are edited
	return nil
}

// UpdateDetails changes base detail fields.
func (w *Wizard) UpdateDetails(p DetailsPatch) error {
	if w.closed {
		return ErrClosed
	}
	if w.draft.applyDetails(p) {
		w.state = w.state.MarkDirty()
	}
	return nil
}

// UpdateSpecification changes the category and specification fields.
// Blocks of other categories are kept in the draft.
func (w *Wizard) UpdateSpecification(p SpecificationPatch) error {
	if w.closed {
		return ErrClosed
	}
	if p.Category != nil && !p.Category.Valid() {
		return validation.Errors{"category": fmt.Sprintf("Unknown category %q", string(*p.Category))}
	}
	if w.draft.applySpecification(p) {
		w.state = w.state.MarkDirty()
	}
	return nil
}

// Advance validates the current step and moves to the next one.
// On the last step it does nothing.
func (w *Wizard) Advance() error {
	if w.closed {
		return ErrClosed
	}
	if w.state.Current == LastStep {
		return nil
	}
	if err := w.Validate(w.state.Current); err != nil {
		return err
	}
	w.state, _ = w.state.Advance(true)
	return nil
}

// Retreat moves to the previous step and reports whether it moved.
func (w *Wizard) Retreat() bool {
	if w.closed {
		return false
	}
	var moved bool
	w.state, moved = w.state.Retreat()
	return moved
}

// JumpTo moves to a visited step and reports whether it moved.
func (w *Wizard) JumpTo(step Step) bool {
	if w.closed {
		return false
	}
	var moved bool
	w.state, moved = w.state.JumpTo(step)
	return moved
}

// AddReview appends an empty review.
func (w *Wizard) AddReview() (model.Review, error) {
	if w.closed {
		return model.Review{}, ErrClosed
	}
	r := w.reviews.Add()
	w.state = w.state.MarkDirty()
	return r, nil
}

// UpdateReview changes the rating and/or feedback of the review at index.
func (w *Wizard) UpdateReview(index int, patch ReviewPatch) error {
	if w.closed {
		return ErrClosed
	}
	changed, err := w.reviews.Update(index, patch)
	if err != nil {
		return err
	}
	if changed {
		w.state = w.state.MarkDirty()
	}
	return nil
}

// ConfirmReview commits the feedback of the review at index.
func (w *Wizard) ConfirmReview(index int, feedback string) error {
	if w.closed {
		return ErrClosed
	}
	changed, err := w.reviews.Confirm(index, feedback)
	if err != nil {
		return err
	}
	if changed {
		w.state = w.state.MarkDirty()
	}
	return nil
}

// EditReview reopens the feedback of the review at index.
func (w *Wizard) EditReview(index int) error {
	if w.closed {
		return ErrClosed
	}
	return w.reviews.Edit(index)
}

// RemoveReview deletes the review at index.
func (w *Wizard) RemoveReview(index int) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.reviews.Remove(index); err != nil {
		return err
	}
	w.state = w.state.MarkDirty()
	return nil
}

// SubmitFinal validates the whole product, hands it to persist and closes
// the wizard once persist succeeds. Only allowed on the reviews step.
func (w *Wizard) SubmitFinal(persist func(*model.Product) error) error {
	if w.closed {
		return ErrClosed
	}
	if w.state.Current != LastStep {
		return ErrNotFinalStep
	}
	product := w.Product()
	if err := validation.Product(product); err != nil {
		return err
	}
	if err := persist(product); err != nil {
		return err
	}
	w.closed = true
	return nil
}

// Discard closes the wizard without saving. When fields were modified the
// caller must confirm, otherwise ErrConfirmationRequired is returned.
func (w *Wizard) Discard(confirmed bool) error {
	if w.closed {
		return ErrClosed
	}
	if w.state.Dirty && !confirmed {
		return ErrConfirmationRequired
	}
	w.closed = true
	return nil
}
