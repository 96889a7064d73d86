package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
)

type tagHandler struct {
	tagSvc service.TagService
}

func newTagHandler(tagSvc service.TagService) *tagHandler {
	return &tagHandler{
		tagSvc: tagSvc,
	}
}

type createTagRequest struct {
	Name *string `json:"name"`
}

type updateTagRequest struct {
	Name *string `json:"name"`
}

// every store failure on this resource is a server error
func tagErr(err error) error {
	return apierr.Classify(err, apperr.PersistenceErr)
}

func (h *tagHandler) ListTags(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.tagSvc.ListTags(r.Context())
	if err != nil {
		return tagErr(fmt.Errorf("tag service list tags: %w", err))
	}

	return writeJSON(w, http.StatusOK, mapSlice(tags, newTagWithProductsResponse))
}

func (h *tagHandler) GetTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	tag, err := h.tagSvc.GetTag(r.Context(), id)
	if err != nil {
		return tagErr(fmt.Errorf("tag service get tag: %w", err))
	}

	return writeJSON(w, http.StatusOK, newTagWithProductsResponse(tag))
}

func (h *tagHandler) CreateTag(w http.ResponseWriter, r *http.Request) error {
	var req createTagRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	tag, err := h.tagSvc.CreateTag(r.Context(), service.CreateTagParams{
		Name: req.Name,
	})
	if err != nil {
		return tagErr(fmt.Errorf("tag service create tag: %w", err))
	}

	return writeJSON(w, http.StatusCreated, newTagResponse(tag))
}

func (h *tagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateTagRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	affected, err := h.tagSvc.UpdateTag(r.Context(), service.UpdateTagParams{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		return tagErr(fmt.Errorf("tag service update tag: %w", err))
	}

	return writeJSON(w, http.StatusOK, affectedRowsResponse{AffectedRows: affected})
}

func (h *tagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.tagSvc.DeleteTag(r.Context(), id); err != nil {
		return tagErr(fmt.Errorf("tag service delete tag: %w", err))
	}

	return writeJSON(w, http.StatusOK, messageResponse{Message: "Tag deleted"})
}
