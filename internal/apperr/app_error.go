package apperr

import "github.com/tuanvumaihuynh/product-catalog/pkg/zerror"

const (
	ValidationErrorCode  = "VALIDATION_FAILED"
	CategoryNotFoundCode = "CATEGORY_NOT_FOUND"
	ProductNotFoundCode  = "PRODUCT_NOT_FOUND"
	TagNotFoundCode      = "TAG_NOT_FOUND"
	ProductWriteCode     = "PRODUCT_WRITE_FAILED"
	PersistenceCode      = "PERSISTENCE_FAILED"
	DatabaseDownCode     = "DATABASE_UNAVAILABLE"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	CategoryNotFoundErr = zerror.NewNotFound(CategoryNotFoundCode, "Category not found")
	ProductNotFoundErr  = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	TagNotFoundErr      = zerror.NewNotFound(TagNotFoundCode, "Tag not found")

	// ProductWriteErr wraps any store failure while creating or updating a
	// product.
	ProductWriteErr = zerror.NewBadRequest(ProductWriteCode, "product could not be saved")

	// PersistenceErr wraps any other store failure.
	PersistenceErr = zerror.NewInternalServerError(PersistenceCode, "persistence error")

	DatabaseDownErr = zerror.NewZError(nil, zerror.StatusServiceUnavailable, DatabaseDownCode, "database unavailable")
)
