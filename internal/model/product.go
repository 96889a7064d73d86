package model

type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    *int64  `json:"category_id"`

	// Category and Tags are populated only when the associations are included.
	Category *Category `json:"category"`
	Tags     []Tag     `json:"tags"`
}

// DefaultStockQuantity is used when a product is created without a stock.
const DefaultStockQuantity = 10
