package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type ProductTagRepository interface {
	WithDB(db db.DB) ProductTagRepository
	ListProductTagsByProductID(ctx context.Context, productID int64) ([]model.ProductTag, error)
	// BulkCreateProductTags inserts one row per tag id and returns the rows in
	// the order given.
	BulkCreateProductTags(ctx context.Context, productID int64, tagIDs []int64) ([]model.ProductTag, error)
	// DeleteProductTags deletes rows by their own id.
	DeleteProductTags(ctx context.Context, ids []int64) (int64, error)
	DeleteProductTagsByProductID(ctx context.Context, productID int64) (int64, error)
	DeleteProductTagsByTagID(ctx context.Context, tagID int64) (int64, error)
}

type productTagRepository struct {
	db db.DB
}

func NewProductTagRepository(db db.DB) ProductTagRepository {
	return &productTagRepository{db: db}
}

func (r productTagRepository) WithDB(db db.DB) ProductTagRepository {
	return &productTagRepository{db: db}
}

func (r productTagRepository) ListProductTagsByProductID(ctx context.Context, productID int64) ([]model.ProductTag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, tag_id
		FROM product_tags
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query product tags: %w", err)
	}

	productTags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.ProductTag])
	if err != nil {
		return nil, fmt.Errorf("collect product tags: %w", err)
	}

	return productTags, nil
}

func (r productTagRepository) BulkCreateProductTags(ctx context.Context, productID int64, tagIDs []int64) ([]model.ProductTag, error) {
	if len(tagIDs) == 0 {
		return []model.ProductTag{}, nil
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO product_tags (product_id, tag_id)
		SELECT @product_id, t.tag_id
		FROM UNNEST(@tag_ids::bigint[]) WITH ORDINALITY AS t(tag_id, ord)
		ORDER BY t.ord
		RETURNING id, product_id, tag_id
	`, pgx.NamedArgs{
		"product_id": productID,
		"tag_ids":    tagIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("bulk insert product tags: %w", err)
	}

	productTags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.ProductTag])
	if err != nil {
		return nil, fmt.Errorf("bulk insert product tags: %w", err)
	}

	return productTags, nil
}

func (r productTagRepository) DeleteProductTags(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM product_tags WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete product tags: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r productTagRepository) DeleteProductTagsByProductID(ctx context.Context, productID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete product tags by product: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r productTagRepository) DeleteProductTagsByTagID(ctx context.Context, tagID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_tags WHERE tag_id = $1`, tagID)
	if err != nil {
		return 0, fmt.Errorf("delete product tags by tag: %w", err)
	}

	return tag.RowsAffected(), nil
}
