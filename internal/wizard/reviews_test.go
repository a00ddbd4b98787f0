package wizard

import (
	"errors"
	"testing"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewEditor(t *testing.T) {
	t.Run("add appends an empty review with a generated ID", func(t *testing.T) {
		e := NewReviewEditor(nil)

		first := e.Add()
		second := e.Add()

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Zero(t, first.Rating)
		assert.Empty(t, first.Feedback)
		assert.Equal(t, []model.Review{first, second}, e.Reviews())
	})

	t.Run("update replaces rating and feedback independently", func(t *testing.T) {
		e := NewReviewEditor(nil)
		e.Add()

		changed, err := e.Update(0, ReviewPatch{Rating: ptr(4.0)})
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = e.Update(0, ReviewPatch{Feedback: ptr("Good")})
		require.NoError(t, err)
		assert.True(t, changed)

		r := e.Reviews()[0]
		assert.Equal(t, 4.0, r.Rating)
		assert.Equal(t, "Good", r.Feedback)
	})

	t.Run("update with the same values reports no change", func(t *testing.T) {
		e := NewReviewEditor([]model.Review{{ID: "r1", Rating: 2}})

		changed, err := e.Update(0, ReviewPatch{Rating: ptr(2.0)})

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("update rejects ratings off the quarter grid", func(t *testing.T) {
		e := NewReviewEditor([]model.Review{{ID: "r1", Rating: 2}})

		_, err := e.Update(0, ReviewPatch{Rating: ptr(2.1)})

		_, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, 2.0, e.Reviews()[0].Rating)
	})

	t.Run("remove shifts later reviews left", func(t *testing.T) {
		e := NewReviewEditor([]model.Review{{ID: "a"}, {ID: "b"}, {ID: "c"}})

		require.NoError(t, e.Remove(1))

		reviews := e.Reviews()
		require.Len(t, reviews, 2)
		assert.Equal(t, "a", reviews[0].ID)
		assert.Equal(t, "c", reviews[1].ID)
	})

	t.Run("confirm commits feedback and edit reopens it", func(t *testing.T) {
		e := NewReviewEditor([]model.Review{{ID: "a"}})

		changed, err := e.Confirm(0, "Nice")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, e.Reviews()[0].Confirmed)
		assert.Equal(t, "Nice", e.Reviews()[0].Feedback)

		require.NoError(t, e.Edit(0))
		assert.False(t, e.Reviews()[0].Confirmed)
		assert.Equal(t, "Nice", e.Reviews()[0].Feedback)
	})

	t.Run("out of range index", func(t *testing.T) {
		e := NewReviewEditor([]model.Review{{ID: "a"}})

		_, updateErr := e.Update(3, ReviewPatch{})
		_, confirmErr := e.Confirm(-1, "x")

		assert.True(t, errors.Is(updateErr, ErrReviewNotFound))
		assert.True(t, errors.Is(confirmErr, ErrReviewNotFound))
		assert.True(t, errors.Is(e.Remove(1), ErrReviewNotFound))
		assert.True(t, errors.Is(e.Edit(1), ErrReviewNotFound))
		assert.Equal(t, 1, e.Len())
	})

	t.Run("editor works on a copy of the input", func(t *testing.T) {
		input := []model.Review{{ID: "a"}}
		e := NewReviewEditor(input)

		_, err := e.Update(0, ReviewPatch{Feedback: ptr("changed")})
		require.NoError(t, err)

		assert.Empty(t, input[0].Feedback)
	})
}

func ptr[T any](v T) *T {
	return &v
}
