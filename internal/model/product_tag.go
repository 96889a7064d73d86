package model

// ProductTag is one row of the product/tag join table.
type ProductTag struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	TagID     int64 `json:"tag_id"`
}
