package http

import "github.com/tuanvumaihuynh/product-catalog/internal/model"

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryWithProductsResponse struct {
	categoryResponse
	Products []productResponse `json:"products"`
}

type productResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    *int64  `json:"category_id"`
}

// productWithAssociationsResponse always carries both keys: category is null
// for an uncategorized product and tags is an empty array when untagged.
type productWithAssociationsResponse struct {
	productResponse
	Category *categoryResponse `json:"category"`
	Tags     []tagResponse     `json:"tags"`
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tagWithProductsResponse struct {
	tagResponse
	Products []productResponse `json:"products"`
}

func newCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

func newCategoryWithProductsResponse(c model.Category) categoryWithProductsResponse {
	return categoryWithProductsResponse{
		categoryResponse: newCategoryResponse(c),
		Products:         mapSlice(c.Products, newProductResponse),
	}
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
	}
}

func newProductWithAssociationsResponse(p model.Product) productWithAssociationsResponse {
	res := productWithAssociationsResponse{
		productResponse: newProductResponse(p),
		Tags:            mapSlice(p.Tags, newTagResponse),
	}
	if p.Category != nil {
		category := newCategoryResponse(*p.Category)
		res.Category = &category
	}
	return res
}

func newTagResponse(t model.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

func newTagWithProductsResponse(t model.Tag) tagWithProductsResponse {
	return tagWithProductsResponse{
		tagResponse: newTagResponse(t),
		Products:    mapSlice(t.Products, newProductResponse),
	}
}

// mapSlice never returns nil, so empty associations encode as [].
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
