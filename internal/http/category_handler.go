package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
)

type categoryHandler struct {
	categorySvc service.CategoryService
}

func newCategoryHandler(categorySvc service.CategoryService) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
	}
}

type createCategoryRequest struct {
	Name *string `json:"name"`
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
}

// every store failure on this resource is a server error
func categoryErr(err error) error {
	return apierr.Classify(err, apperr.PersistenceErr)
}

func (h *categoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		return categoryErr(fmt.Errorf("category service list categories: %w", err))
	}

	return writeJSON(w, http.StatusOK, mapSlice(categories, newCategoryWithProductsResponse))
}

func (h *categoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	category, err := h.categorySvc.GetCategory(r.Context(), id)
	if err != nil {
		return categoryErr(fmt.Errorf("category service get category: %w", err))
	}

	return writeJSON(w, http.StatusOK, newCategoryWithProductsResponse(category))
}

func (h *categoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	var req createCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), service.CreateCategoryParams{
		Name: req.Name,
	})
	if err != nil {
		return categoryErr(fmt.Errorf("category service create category: %w", err))
	}

	return writeJSON(w, http.StatusCreated, newCategoryResponse(category))
}

func (h *categoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	affected, err := h.categorySvc.UpdateCategory(r.Context(), service.UpdateCategoryParams{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		return categoryErr(fmt.Errorf("category service update category: %w", err))
	}

	return writeJSON(w, http.StatusOK, affectedRowsResponse{AffectedRows: affected})
}

func (h *categoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.categorySvc.DeleteCategory(r.Context(), id); err != nil {
		return categoryErr(fmt.Errorf("category service delete category: %w", err))
	}

	return writeJSON(w, http.StatusOK, messageResponse{Message: "Category deleted"})
}
