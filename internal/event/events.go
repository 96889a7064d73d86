package event

const (
	TopicCategoryCreated = "catalog.category.created"
	TopicCategoryUpdated = "catalog.category.updated"
	TopicCategoryDeleted = "catalog.category.deleted"

	TopicProductCreated = "catalog.product.created"
	TopicProductUpdated = "catalog.product.updated"
	TopicProductDeleted = "catalog.product.deleted"

	TopicTagCreated = "catalog.tag.created"
	TopicTagUpdated = "catalog.tag.updated"
	TopicTagDeleted = "catalog.tag.deleted"
)

// Topics lists every topic the catalog publishes.
var Topics = []string{
	TopicCategoryCreated, TopicCategoryUpdated, TopicCategoryDeleted,
	TopicProductCreated, TopicProductUpdated, TopicProductDeleted,
	TopicTagCreated, TopicTagUpdated, TopicTagDeleted,
}

type CategoryEvent struct {
	CategoryID int64   `json:"category_id"`
	Name       *string `json:"name,omitempty"`
}

type ProductEvent struct {
	ProductID     int64    `json:"product_id"`
	Name          *string  `json:"name,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	TagIDs        []int64  `json:"tag_ids,omitempty"`

	// CategoryCleared reports that the product was removed from its category.
	CategoryCleared bool `json:"category_cleared,omitempty"`
}

type TagEvent struct {
	TagID int64   `json:"tag_id"`
	Name  *string `json:"name,omitempty"`
}
