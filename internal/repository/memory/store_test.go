package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository/memory"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

func TestStore_Constraints(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a category without a name", func(t *testing.T) {
		repos := memory.NewStore().Repositories()

		_, err := repos.Categories.CreateCategory(ctx, repository.CreateCategoryParams{})

		assert.True(t, db.IsConstraintViolation(err))
	})

	t.Run("Should reject an unknown category on products", func(t *testing.T) {
		repos := memory.NewStore().Repositories()

		_, err := repos.Products.CreateProduct(ctx, repository.CreateProductParams{
			Name:       "Cap",
			Price:      5,
			CategoryID: ptr.New(int64(42)),
		})

		assert.True(t, db.IsConstraintViolation(err))
	})

	t.Run("Should reject duplicate product tag pairs without writing", func(t *testing.T) {
		store := memory.NewStore()
		repos := store.Repositories()
		product, err := repos.Products.CreateProduct(ctx, repository.CreateProductParams{Name: "Cap", Price: 5})
		require.NoError(t, err)
		tag, err := repos.Tags.CreateTag(ctx, repository.CreateTagParams{Name: ptr.New("red")})
		require.NoError(t, err)

		_, err = repos.ProductTags.BulkCreateProductTags(ctx, product.ID, []int64{tag.ID, tag.ID})

		assert.True(t, db.IsConstraintViolation(err))
		assert.Empty(t, store.ProductTags())
	})

	t.Run("Should refuse to delete a product that still has tags", func(t *testing.T) {
		store := memory.NewStore()
		repos := store.Repositories()
		product, err := repos.Products.CreateProduct(ctx, repository.CreateProductParams{Name: "Cap", Price: 5})
		require.NoError(t, err)
		tag, err := repos.Tags.CreateTag(ctx, repository.CreateTagParams{Name: ptr.New("red")})
		require.NoError(t, err)
		_, err = repos.ProductTags.BulkCreateProductTags(ctx, product.ID, []int64{tag.ID})
		require.NoError(t, err)

		_, err = repos.Products.DeleteProduct(ctx, product.ID)
		assert.True(t, db.IsConstraintViolation(err))

		n, err := repos.ProductTags.DeleteProductTagsByProductID(ctx, product.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = repos.Products.DeleteProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("Should detach products from a deleted category", func(t *testing.T) {
		store := memory.NewStore()
		repos := store.Repositories()
		category, err := repos.Categories.CreateCategory(ctx, repository.CreateCategoryParams{Name: ptr.New("Hats")})
		require.NoError(t, err)
		_, err = repos.Products.CreateProduct(ctx, repository.CreateProductParams{Name: "Cap", Price: 5, CategoryID: &category.ID})
		require.NoError(t, err)

		_, err = repos.Categories.DeleteCategory(ctx, category.ID)
		require.NoError(t, err)

		require.Len(t, store.Products(), 1)
		assert.Nil(t, store.Products()[0].CategoryID)
	})
}

func TestStore_Associations(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	category, err := repos.Categories.CreateCategory(ctx, repository.CreateCategoryParams{Name: ptr.New("Shirts")})
	require.NoError(t, err)
	product, err := repos.Products.CreateProduct(ctx, repository.CreateProductParams{
		Name:          "Plain T-Shirt",
		Price:         14.99,
		StockQuantity: 14,
		CategoryID:    &category.ID,
	})
	require.NoError(t, err)
	tag, err := repos.Tags.CreateTag(ctx, repository.CreateTagParams{Name: ptr.New("cotton")})
	require.NoError(t, err)
	_, err = repos.ProductTags.BulkCreateProductTags(ctx, product.ID, []int64{tag.ID})
	require.NoError(t, err)

	got, err := repos.Products.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Shirts", got.Category.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "cotton", got.Tags[0].Name)

	gotTag, err := repos.Tags.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, gotTag.Products, 1)
	assert.Equal(t, product.ID, gotTag.Products[0].ID)

	_, err = repos.Products.GetProduct(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_FailWith(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("boom")
	store.FailWith(boom)

	_, err := store.Repositories().Categories.ListCategories(context.Background())
	assert.ErrorIs(t, err, boom)

	err = store.WithTx(context.Background(), func(db.DB) error { return nil })
	assert.ErrorIs(t, err, boom)

	store.FailWith(nil)
	_, err = store.Repositories().Categories.ListCategories(context.Background())
	assert.NoError(t, err)
}

func TestStore_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Should roll back every write when the function fails", func(t *testing.T) {
		store := memory.NewStore()
		repos := store.Repositories()
		boom := errors.New("boom")

		err := store.WithTx(ctx, func(tx db.DB) error {
			product, err := repos.Products.WithDB(tx).CreateProduct(ctx, repository.CreateProductParams{Name: "Cap", Price: 5})
			require.NoError(t, err)
			_, err = repos.ProductTags.WithDB(tx).BulkCreateProductTags(ctx, product.ID, []int64{999})
			require.Error(t, err)
			require.NoError(t, repos.OutboxMsgs.WithDB(tx).CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{Topic: "product.created"}))
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Empty(t, store.Products())
		assert.Empty(t, store.ProductTags())
		assert.Empty(t, store.OutboxMsgs())
	})

	t.Run("Should keep writes when the function succeeds", func(t *testing.T) {
		store := memory.NewStore()
		repos := store.Repositories()

		err := store.WithTx(ctx, func(tx db.DB) error {
			_, err := repos.Products.WithDB(tx).CreateProduct(ctx, repository.CreateProductParams{Name: "Cap", Price: 5})
			return err
		})

		require.NoError(t, err)
		assert.Len(t, store.Products(), 1)
	})
}
