package repository

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginator(t *testing.T) {
	t.Run("should fail empty token", func(t *testing.T) {
		// given
		pageToken := ""

		// when
		paginator, err := DecodePageToken(pageToken)

		// then
		assert.True(t, errors.Is(err, ErrInvalidPaginationToken))
		assert.Nil(t, paginator)
	})

	t.Run("should fail invalid token", func(t *testing.T) {
		// given
		pageToken := "querty123"

		// when
		paginator, err := DecodePageToken(pageToken)

		// then
		assert.Error(t, err)
		var corruptInputErr base64.CorruptInputError
		assert.True(t, errors.As(err, &corruptInputErr))
		assert.Nil(t, paginator)
	})

	t.Run("should fail non numeric position", func(t *testing.T) {
		// given
		pageToken := base64.StdEncoding.EncodeToString([]byte("abc,some-id"))

		// when
		paginator, err := DecodePageToken(pageToken)

		// then
		assert.ErrorContains(t, err, "failed to parse token position")
		assert.Nil(t, paginator)
	})

	t.Run("should succeed", func(t *testing.T) {
		// given
		originalPaginator := Paginator{
			LastID:  uuid.New().String(),
			LastSeq: 42,
		}

		// when
		encodedToken := originalPaginator.Encode()
		decodedPaginator, err := DecodePageToken(encodedToken)

		// then
		require.NoError(t, err)
		assert.Equal(t, originalPaginator, *decodedPaginator)
	})
}

func TestQuery_ApplyPagination(t *testing.T) {
	t.Run("no limit and no token lists everything", func(t *testing.T) {
		q := NewQuery()

		require.NoError(t, q.ApplyPagination(0, ""))

		assert.Zero(t, q.Limit)
		assert.Nil(t, q.Paginator)
	})

	t.Run("limit is capped", func(t *testing.T) {
		q := NewQuery()

		require.NoError(t, q.ApplyPagination(1000, ""))

		assert.Equal(t, maxPaginationLimit, q.Limit)
	})

	t.Run("token without limit uses the default page size", func(t *testing.T) {
		q := NewQuery()
		token := Paginator{LastID: "a", LastSeq: 3}.Encode()

		require.NoError(t, q.ApplyPagination(0, token))

		assert.Equal(t, DefaultPaginationLimit, q.Limit)
		require.NotNil(t, q.Paginator)
		assert.Equal(t, int64(3), q.Paginator.LastSeq)
	})

	t.Run("invalid token", func(t *testing.T) {
		q := NewQuery()

		err := q.ApplyPagination(5, "!!!")

		assert.EqualError(t, err, "invalid page token")
	})
}
