package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository"
	reposql "github.com/iyhunko/product-catalog/internal/repository/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_Integration(t *testing.T) {
	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	ctx := context.Background()
	store := reposql.NewProductStore(testDB.DB)

	t.Run("add and find keep every field", func(t *testing.T) {
		testDB.TruncateTables(t)
		purchasedAt := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)

		created, err := store.Add(ctx, &model.Product{
			Title:       "Kurta",
			Description: "festive",
			Price:       "40$",
			PurchasedAt: &purchasedAt,
			Category:    model.CategoryClothing,
			Spec:        model.ClothingSpec{ClothType: "Kurta", ClothSize: "Medium", ClothColor: "Green", ClothFabric: "Silk"},
			Reviews:     []model.Review{{ID: "r1", Rating: 4.75, Feedback: "Lovely", Confirmed: true}},
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, "Kurta", found.Title)
		assert.Equal(t, "festive", found.Description)
		assert.Equal(t, model.ClothingSpec{ClothType: "Kurta", ClothSize: "Medium", ClothColor: "Green", ClothFabric: "Silk"}, found.Spec)
		require.NotNil(t, found.PurchasedAt)
		assert.True(t, purchasedAt.Equal(*found.PurchasedAt))
		assert.Equal(t, created.Reviews, found.Reviews)
		assert.Equal(t, created.Seq, found.Seq)
	})

	t.Run("update replaces and keeps creation time", func(t *testing.T) {
		testDB.TruncateTables(t)
		created, err := store.Add(ctx, defaultMobile("Phone"))
		require.NoError(t, err)

		changed := created.Clone()
		changed.Title = "Phone X"
		changed.Category = model.CategoryTelevision
		changed.Spec = model.TelevisionSpec{DisplaySize: "32Inch", DeviceType: "Android"}

		updated, err := store.Update(ctx, changed)
		require.NoError(t, err)
		assert.True(t, updated)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Phone X", found.Title)
		assert.Equal(t, model.TelevisionSpec{DisplaySize: "32Inch", DeviceType: "Android"}, found.Spec)
		assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Millisecond)
	})

	t.Run("update and remove of absent products are no-ops", func(t *testing.T) {
		testDB.TruncateTables(t)
		_, err := store.Add(ctx, defaultMobile("Only"))
		require.NoError(t, err)

		updated, err := store.Update(ctx, &model.Product{ID: "missing", Title: "Ghost", Category: model.CategoryMobile})
		require.NoError(t, err)
		assert.False(t, updated)

		removed, err := store.Remove(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, removed)

		products, err := store.List(ctx, *repository.NewQuery())
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("remove deletes the product", func(t *testing.T) {
		testDB.TruncateTables(t)
		created, err := store.Add(ctx, defaultMobile("Gone"))
		require.NoError(t, err)

		removed, err := store.Remove(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = store.FindByID(ctx, created.ID)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("list pages in insertion order", func(t *testing.T) {
		testDB.TruncateTables(t)
		for _, title := range []string{"A", "B", "C"} {
			_, err := store.Add(ctx, defaultMobile(title))
			require.NoError(t, err)
		}

		query := repository.NewQuery()
		query.Limit = 2
		first, err := store.List(ctx, *query)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "A", first[0].Title)
		assert.Equal(t, "B", first[1].Title)

		query.Paginator = &repository.Paginator{LastID: first[1].ID, LastSeq: first[1].Seq}
		second, err := store.List(ctx, *query)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, "C", second[0].Title)

		filtered, err := store.List(ctx, *repository.NewQuery().With(repository.CategoryField, string(model.CategoryTelevision)))
		require.NoError(t, err)
		assert.Empty(t, filtered)
	})
}

func defaultMobile(title string) *model.Product {
	return &model.Product{
		Title:    title,
		Price:    "500$",
		Category: model.CategoryMobile,
		Spec:     model.MobileSpec{RAMSize: "6GB", StorageSize: "64GB", SoftwareType: "Android"},
	}
}
