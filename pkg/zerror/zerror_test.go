package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("CATALOG_PRODUCT_NOT_FOUND", "Product not found")

	t.Run("Should format without parent", func(t *testing.T) {
		assert.Equal(t, "Code=CATALOG_PRODUCT_NOT_FOUND, Msg=Product not found", notFound.Error())
	})

	t.Run("Should unwrap parent", func(t *testing.T) {
		parent := errors.New("no rows")
		err := fmt.Errorf("get product: %w", notFound.WrapParent(parent))

		assert.ErrorIs(t, err, parent)
		assert.ErrorIs(t, err, notFound)
		assert.Contains(t, err.Error(), "Parent=(no rows)")
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("CATALOG_TAG_NOT_FOUND", "Tag not found")
		assert.NotErrorIs(t, notFound, other)
	})

	t.Run("Should keep predefined error untouched on nil parent", func(t *testing.T) {
		assert.Nil(t, notFound.WrapParent(nil).Parent())
		assert.Equal(t, zerror.StatusNotFound, notFound.Status())
		assert.Equal(t, "NOT_FOUND", notFound.Status().String())
	})
}
