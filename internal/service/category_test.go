package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should get category with its products", func(t *testing.T) {
		f := newFixture(t)

		category, err := f.categorySvc.CreateCategory(ctx, service.CreateCategoryParams{Name: ptr.New("Shorts")})
		require.NoError(t, err)

		_, err = f.productSvc.CreateProduct(ctx, service.CreateProductParams{
			Name:       "Cargo Shorts",
			Price:      29.99,
			CategoryID: &category.ID,
			TagIDs:     []int64{},
		})
		require.NoError(t, err)

		got, err := f.categorySvc.GetCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, category.ID, got.ID)
		require.Len(t, got.Products, 1)
		assert.Equal(t, "Cargo Shorts", got.Products[0].Name)

		all, err := f.categorySvc.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Products, 1)
	})

	t.Run("Should return not found for missing category", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.categorySvc.GetCategory(ctx, 12345)
		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})

	t.Run("Should report affected rows on update", func(t *testing.T) {
		f := newFixture(t)

		category, err := f.categorySvc.CreateCategory(ctx, service.CreateCategoryParams{Name: ptr.New("Music")})
		require.NoError(t, err)

		affected, err := f.categorySvc.UpdateCategory(ctx, service.UpdateCategoryParams{ID: category.ID, Name: ptr.New("Vinyl")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = f.categorySvc.UpdateCategory(ctx, service.UpdateCategoryParams{ID: category.ID + 100, Name: ptr.New("Nope")})
		require.NoError(t, err)
		assert.Zero(t, affected)

		got, err := f.categorySvc.GetCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vinyl", got.Name)

		assert.Equal(t, []string{event.TopicCategoryCreated, event.TopicCategoryUpdated}, f.topics())
	})

	t.Run("Should make category unreachable after delete", func(t *testing.T) {
		f := newFixture(t)

		category, err := f.categorySvc.CreateCategory(ctx, service.CreateCategoryParams{Name: ptr.New("Hats")})
		require.NoError(t, err)

		for range 2 {
			require.NoError(t, f.categorySvc.DeleteCategory(ctx, category.ID))

			_, err = f.categorySvc.GetCategory(ctx, category.ID)
			assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
		}

		assert.Equal(t, []string{event.TopicCategoryCreated, event.TopicCategoryDeleted}, f.topics())
	})

	t.Run("Should reject missing name at the store", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.categorySvc.CreateCategory(ctx, service.CreateCategoryParams{})
		assert.ErrorContains(t, err, "not-null")
	})

	t.Run("Should surface store failure", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailWith(errors.New("db down"))

		_, err := f.categorySvc.ListCategories(ctx)
		assert.ErrorContains(t, err, "db down")
	})
}
