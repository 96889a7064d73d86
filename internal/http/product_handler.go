package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
	}
}

type createProductRequest struct {
	Name          *string  `json:"name" validate:"required,notblank"`
	Price         *float64 `json:"price" validate:"required"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    *int64   `json:"category_id"`
	// TagIDs must be present, even when empty.
	TagIDs []int64 `json:"tagIds" validate:"required"`
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	// CategoryID set to null removes the product from its category.
	CategoryID nullableID `json:"category_id"`
	TagIDs     []int64    `json:"tagIds"`
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return apierr.Classify(fmt.Errorf("product service list products: %w", err), apperr.PersistenceErr)
	}

	return writeJSON(w, http.StatusOK, mapSlice(products, newProductWithAssociationsResponse))
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return apierr.Classify(fmt.Errorf("product service get product: %w", err), apperr.PersistenceErr)
	}

	return writeJSON(w, http.StatusOK, newProductWithAssociationsResponse(product))
}

// CreateProduct responds with the created join rows when tags were given,
// otherwise with the product itself.
func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	result, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:          *req.Name,
		Price:         *req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		return apierr.Classify(fmt.Errorf("product service create product: %w", err), apperr.ProductWriteErr)
	}

	if len(result.ProductTags) > 0 {
		return writeJSON(w, http.StatusOK, result.ProductTags)
	}

	return writeJSON(w, http.StatusOK, newProductResponse(result.Product))
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	affected, err := h.productSvc.UpdateProduct(r.Context(), service.UpdateProductParams{
		ID:            id,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID.Value,
		ClearCategory: req.CategoryID.null(),
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		return apierr.Classify(fmt.Errorf("product service update product: %w", err), apperr.ProductWriteErr)
	}

	return writeJSON(w, http.StatusOK, affectedRowsResponse{AffectedRows: affected})
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return apierr.Classify(fmt.Errorf("product service delete product: %w", err), apperr.PersistenceErr)
	}

	return writeJSON(w, http.StatusOK, messageResponse{Message: "Product and associated tags deleted"})
}
