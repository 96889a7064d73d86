package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

func (f *fixture) createTags(t *testing.T, names ...string) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		ids = append(ids, f.create(t, "/api/tags", fmt.Sprintf(`{"name":%q}`, name)))
	}
	return ids
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("Should respond with the product for empty tag ids", func(t *testing.T) {
		f := newFixture(t)

		resp := f.do(t, http.MethodPost, "/api/products", `{"name":"Basketball","price":200,"tagIds":[]}`)

		require.Equal(t, http.StatusOK, resp.Code)
		product := decode[model.Product](t, resp)
		assert.Equal(t, "Basketball", product.Name)
		assert.Equal(t, model.DefaultStockQuantity, product.StockQuantity)
		assert.Len(t, f.store.Products(), 1)
		assert.Empty(t, f.store.ProductTags())
	})

	t.Run("Should respond with the join rows for tag ids", func(t *testing.T) {
		f := newFixture(t)
		tagIDs := f.createTags(t, "rock music", "pop music")

		body := fmt.Sprintf(`{"name":"Vinyl Record","price":12.99,"stock_quantity":50,"tagIds":[%d,%d]}`, tagIDs[0], tagIDs[1])
		resp := f.do(t, http.MethodPost, "/api/products", body)

		require.Equal(t, http.StatusOK, resp.Code)
		rows := decode[[]model.ProductTag](t, resp)
		require.Len(t, rows, 2)
		assert.ElementsMatch(t, tagIDs, []int64{rows[0].TagID, rows[1].TagID})
		assert.Len(t, f.store.Products(), 1)
		assert.Len(t, f.store.ProductTags(), 2)
	})

	t.Run("Should reject a missing tagIds field", func(t *testing.T) {
		f := newFixture(t)

		for _, body := range []string{
			`{"name":"Basketball","price":200}`,
			`{"name":"Basketball","price":200,"tagIds":null}`,
		} {
			resp := f.do(t, http.MethodPost, "/api/products", body)

			require.Equal(t, http.StatusBadRequest, resp.Code, body)
			res := decode[errorBody](t, resp)
			assert.Equal(t, apperr.ValidationErrorCode, res.Code)
			require.Len(t, res.Details, 1)
			assert.Equal(t, "tagIds", res.Details[0].Field)
		}
		assert.Empty(t, f.store.Products())
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		f := newFixture(t)

		resp := f.do(t, http.MethodPost, "/api/products", `{"name":`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ValidationErrorCode, decode[errorBody](t, resp).Code)
	})

	t.Run("Should fail with 400 for an unknown tag and keep nothing", func(t *testing.T) {
		f := newFixture(t)

		resp := f.do(t, http.MethodPost, "/api/products", `{"name":"Basketball","price":200,"tagIds":[999]}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ProductWriteCode, decode[errorBody](t, resp).Code)
		assert.Empty(t, f.store.Products())
		assert.Empty(t, f.store.ProductTags())
		assert.Empty(t, f.store.OutboxMsgs())
	})

	t.Run("Should fail with 400 for an unknown category", func(t *testing.T) {
		f := newFixture(t)

		resp := f.do(t, http.MethodPost, "/api/products", `{"name":"Basketball","price":200,"category_id":404,"tagIds":[]}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		res := decode[errorBody](t, resp)
		assert.Equal(t, apperr.ProductWriteCode, res.Code)
		assert.NotEmpty(t, res.Error)
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	t.Run("Should reconcile tags in the background", func(t *testing.T) {
		f := newFixture(t)
		tagIDs := f.createTags(t, "t1", "t2", "t3", "t4")

		body := fmt.Sprintf(`{"name":"Striped Shirt","price":22.5,"tagIds":[%d,%d,%d]}`, tagIDs[0], tagIDs[1], tagIDs[2])
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/products", body).Code)

		before := map[int64]int64{}
		var productID int64
		for _, row := range f.store.ProductTags() {
			before[row.TagID] = row.ID
			productID = row.ProductID
		}

		body = fmt.Sprintf(`{"price":19.99,"tagIds":[%d,%d,%d]}`, tagIDs[1], tagIDs[2], tagIDs[3])
		resp := f.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", productID), body)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"affected_rows":1}`, resp.Body.String())

		f.productSvc.Wait()

		after := map[int64]int64{}
		for _, row := range f.store.ProductTags() {
			after[row.TagID] = row.ID
		}
		require.Len(t, after, 3)
		assert.Equal(t, before[tagIDs[1]], after[tagIDs[1]])
		assert.Equal(t, before[tagIDs[2]], after[tagIDs[2]])
		assert.Contains(t, after, tagIDs[3])
		assert.NotContains(t, after, tagIDs[0])

		resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.InDelta(t, 19.99, decode[model.Product](t, resp).Price, 0.001)
	})

	t.Run("Should leave tags alone without tag ids", func(t *testing.T) {
		f := newFixture(t)
		tagIDs := f.createTags(t, "t1")
		require.Equal(t, http.StatusOK,
			f.do(t, http.MethodPost, "/api/products", fmt.Sprintf(`{"name":"Cap","price":5,"tagIds":[%d]}`, tagIDs[0])).Code)
		productID := f.store.Products()[0].ID

		resp := f.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", productID), `{"name":"Red Cap"}`)
		require.Equal(t, http.StatusOK, resp.Code)
		f.productSvc.Wait()

		assert.Len(t, f.store.ProductTags(), 1)
	})

	t.Run("Should report zero rows for an empty body", func(t *testing.T) {
		f := newFixture(t)
		id := f.create(t, "/api/products", `{"name":"Cap","price":5,"tagIds":[]}`)

		resp := f.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), `{}`)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"affected_rows":0}`, resp.Body.String())
	})

	t.Run("Should clear the category on an explicit null", func(t *testing.T) {
		f := newFixture(t)
		categoryID := f.create(t, "/api/categories", `{"name":"Hats"}`)
		id := f.create(t, "/api/products", fmt.Sprintf(`{"name":"Cap","price":5,"category_id":%d,"tagIds":[]}`, categoryID))
		path := fmt.Sprintf("/api/products/%d", id)

		resp := f.do(t, http.MethodPut, path, `{"name":"Red Cap"}`)
		require.Equal(t, http.StatusOK, resp.Code)
		product := decode[model.Product](t, f.do(t, http.MethodGet, path, ""))
		require.NotNil(t, product.CategoryID)
		assert.Equal(t, categoryID, *product.CategoryID)

		resp = f.do(t, http.MethodPut, path, `{"category_id":null}`)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"affected_rows":1}`, resp.Body.String())

		resp = f.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t,
			fmt.Sprintf(`{"id":%d,"name":"Red Cap","price":5,"stock_quantity":10,"category_id":null,"category":null,"tags":[]}`, id),
			resp.Body.String())
	})

	t.Run("Should fail with 400 when the store fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.FailWith(errors.New("connection refused"))

		resp := f.do(t, http.MethodPut, "/api/products/1", `{"name":"Red Cap"}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ProductWriteCode, decode[errorBody](t, resp).Code)
	})
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	f := newFixture(t)
	tagIDs := f.createTags(t, "t1", "t2")
	body := fmt.Sprintf(`{"name":"Sandals","price":15,"tagIds":[%d,%d]}`, tagIDs[0], tagIDs[1])
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/products", body).Code)
	path := fmt.Sprintf("/api/products/%d", f.store.Products()[0].ID)

	resp := f.do(t, http.MethodDelete, path, "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Product and associated tags deleted"}`, resp.Body.String())
	assert.Empty(t, f.store.Products())
	assert.Empty(t, f.store.ProductTags())
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, path, "").Code)
}

func TestProductHandler_ReadFailures(t *testing.T) {
	f := newFixture(t)
	f.store.FailWith(errors.New("connection refused"))

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/products/1"},
		{http.MethodDelete, "/api/products/1"},
	} {
		resp := f.do(t, tt.method, tt.path, "")
		assert.Equal(t, http.StatusInternalServerError, resp.Code, "%s %s", tt.method, tt.path)
	}
}
