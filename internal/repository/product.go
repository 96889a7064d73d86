package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateProductParams struct {
	Name          string
	Price         float64
	StockQuantity int
	CategoryID    *int64
}

// UpdateProductParams holds the columns to change; nil fields are left as is.
type UpdateProductParams struct {
	ID            int64
	Name          *string
	Price         *float64
	StockQuantity *int
	CategoryID    *int64
	// ClearCategory sets category_id to NULL and takes precedence over
	// CategoryID.
	ClearCategory bool
}

// Empty reports whether there is nothing to set.
func (p UpdateProductParams) Empty() bool {
	return p.Name == nil && p.Price == nil && p.StockQuantity == nil && p.CategoryID == nil && !p.ClearCategory
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	// ListProducts returns every product with its category and tags attached.
	ListProducts(ctx context.Context) ([]model.Product, error)
	// GetProduct returns the product with category and tags, or ErrNotFound.
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	// UpdateProduct returns the number of rows affected.
	UpdateProduct(ctx context.Context, params UpdateProductParams) (int64, error)
	// DeleteProduct returns the number of rows affected.
	DeleteProduct(ctx context.Context, id int64) (int64, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

type productRow struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Price         pgtype.Numeric `db:"price"`
	StockQuantity int32          `db:"stock_quantity"`
	CategoryID    *int64         `db:"category_id"`
}

func (row productRow) toModel() (model.Product, error) {
	price, err := floatFromNumeric(row.Price)
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:            row.ID,
		Name:          row.Name,
		Price:         price,
		StockQuantity: int(row.StockQuantity),
		CategoryID:    row.CategoryID,
	}, nil
}

type productWithCategoryRow struct {
	productRow
	CategoryName *string `db:"category_name"`
}

const selectProductsWithCategory = `
	SELECT p.id, p.name, p.price, p.stock_quantity, p.category_id, c.name AS category_name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func (r productRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, selectProductsWithCategory+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productWithCategoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return r.attachTags(ctx, productRows)
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	rows, err := r.db.Query(ctx, selectProductsWithCategory+` WHERE p.id = $1`, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[productWithCategoryRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("collect product: %w", err)
	}

	products, err := r.attachTags(ctx, []productWithCategoryRow{row})
	if err != nil {
		return model.Product{}, err
	}

	return products[0], nil
}

func (r productRepository) attachTags(ctx context.Context, rows []productWithCategoryRow) ([]model.Product, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	tags, err := listTagsByProductIDs(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}

		if row.CategoryID != nil && row.CategoryName != nil {
			product.Category = &model.Category{ID: *row.CategoryID, Name: *row.CategoryName}
		}
		product.Tags = tags[row.ID]

		products = append(products, product)
	}

	return products, nil
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := numericFromFloat(params.Price)
	if err != nil {
		return model.Product{}, err
	}

	stock, err := int32FromInt(params.StockQuantity)
	if err != nil {
		return model.Product{}, fmt.Errorf("stock quantity: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO products (name, price, stock_quantity, category_id)
		VALUES (@name, @price, @stock_quantity, @category_id)
		RETURNING id, name, price, stock_quantity, category_id
	`, pgx.NamedArgs{
		"name":           params.Name,
		"price":          price,
		"stock_quantity": stock,
		"category_id":    params.CategoryID,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return row.toModel()
}

func (r productRepository) UpdateProduct(ctx context.Context, params UpdateProductParams) (int64, error) {
	if params.Empty() {
		return 0, nil
	}

	price, err := numericFromFloatPtr(params.Price)
	if err != nil {
		return 0, err
	}

	stock, err := int32FromIntPtr(params.StockQuantity)
	if err != nil {
		return 0, fmt.Errorf("stock quantity: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name           = COALESCE(@name, name),
		    price          = COALESCE(@price, price),
		    stock_quantity = COALESCE(@stock_quantity, stock_quantity),
		    category_id    = CASE WHEN @clear_category THEN NULL
		                          ELSE COALESCE(@category_id, category_id) END
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":             params.ID,
		"name":           params.Name,
		"price":          price,
		"stock_quantity": stock,
		"category_id":    params.CategoryID,
		"clear_category": params.ClearCategory,
	})
	if err != nil {
		return 0, fmt.Errorf("update product: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}

	return tag.RowsAffected(), nil
}

// listProductsByCategoryIDs returns plain products grouped by category id.
func listProductsByCategoryIDs(ctx context.Context, q db.DB, categoryIDs []int64) (map[int64][]model.Product, error) {
	grouped := make(map[int64][]model.Product, len(categoryIDs))
	for _, id := range categoryIDs {
		grouped[id] = []model.Product{}
	}
	if len(categoryIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, `
		SELECT id, name, price, stock_quantity, category_id
		FROM products
		WHERE category_id = ANY($1)
		ORDER BY id
	`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("query products by category: %w", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products by category: %w", err)
	}

	for _, row := range productRows {
		product, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		grouped[*row.CategoryID] = append(grouped[*row.CategoryID], product)
	}

	return grouped, nil
}

// listProductsByTagIDs returns plain products grouped by the tag they carry.
func listProductsByTagIDs(ctx context.Context, q db.DB, tagIDs []int64) (map[int64][]model.Product, error) {
	grouped := make(map[int64][]model.Product, len(tagIDs))
	for _, id := range tagIDs {
		grouped[id] = []model.Product{}
	}
	if len(tagIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, `
		SELECT pt.tag_id, p.id, p.name, p.price, p.stock_quantity, p.category_id
		FROM product_tags pt
		JOIN products p ON p.id = pt.product_id
		WHERE pt.tag_id = ANY($1)
		ORDER BY p.id
	`, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("query products by tag: %w", err)
	}

	type taggedProductRow struct {
		TagID int64 `db:"tag_id"`
		productRow
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[taggedProductRow])
	if err != nil {
		return nil, fmt.Errorf("collect products by tag: %w", err)
	}

	for _, row := range productRows {
		product, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		grouped[row.TagID] = append(grouped[row.TagID], product)
	}

	return grouped, nil
}
